package view

import (
	"context"
	"time"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/metrics"
	"github.com/martinsuchenak/lictrack/internal/model"
)

// DashboardView is the overview screen.
type DashboardView struct {
	client *api.Client

	Phase    string
	Err      error
	Overview *model.DashboardOverview

	gen generation
}

func NewDashboardView(client *api.Client) *DashboardView {
	return &DashboardView{client: client, Phase: PhaseIdle}
}

func (v *DashboardView) Load(ctx context.Context) error {
	gen := v.gen.next()
	v.Phase = PhaseLoading

	overview, err := v.client.DashboardOverview(ctx)
	if !v.gen.current(gen) {
		return nil
	}
	if err != nil {
		v.Phase = PhaseErrored
		v.Err = err
		v.Overview = nil
		return err
	}
	v.Phase = PhaseLoaded
	v.Err = nil
	v.Overview = overview
	return nil
}

// AlertRow is an expiring license with its derived countdown state.
type AlertRow struct {
	model.License
	Days  int
	Level string // badge classification: expired counts as critical
	Icon  string // table icon: expired entries draw nothing
}

// AlertsView is the expiry alerts screen.
type AlertsView struct {
	client *api.Client

	Phase  string
	Err    error
	Alerts []model.License

	Days int // threshold filter; 0 means all

	gen generation
}

func NewAlertsView(client *api.Client, days int) *AlertsView {
	return &AlertsView{client: client, Phase: PhaseIdle, Days: days}
}

// SetDays changes the threshold filter for the next Load.
func (v *AlertsView) SetDays(days int) {
	v.Days = days
}

func (v *AlertsView) Load(ctx context.Context) error {
	gen := v.gen.next()
	v.Phase = PhaseLoading

	alerts, err := v.client.Alerts(ctx, v.Days)
	if !v.gen.current(gen) {
		return nil
	}
	if err != nil {
		v.Phase = PhaseErrored
		v.Err = err
		v.Alerts = nil
		return err
	}
	v.Phase = PhaseLoaded
	v.Err = nil
	v.Alerts = alerts
	return nil
}

// Rows derives countdown state for each alert at now.
func (v *AlertsView) Rows(now time.Time) []AlertRow {
	rows := make([]AlertRow, 0, len(v.Alerts))
	for _, lic := range v.Alerts {
		days := 0
		if to, ok := metrics.ParseDate(lic.ValidTo); ok {
			days = metrics.DaysTo(to, now)
		}
		rows = append(rows, AlertRow{
			License: lic,
			Days:    days,
			Level:   metrics.AlertLevel(days),
			Icon:    metrics.AlertIcon(days),
		})
	}
	return rows
}
