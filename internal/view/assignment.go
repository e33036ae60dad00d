package view

import (
	"context"
	"time"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/metrics"
	"github.com/martinsuchenak/lictrack/internal/model"
	"github.com/martinsuchenak/lictrack/internal/rbac"
)

// AssignmentRow is an assignment joined with the validity state derived
// from its license's window.
type AssignmentRow struct {
	model.Assignment
	ValidityPercent int
	BarTier         string
	StatusTier      string
}

// AssignmentView is the license assignments screen.
type AssignmentView struct {
	client *api.Client

	Caps rbac.Capabilities

	Phase       string
	Err         error
	Assignments []model.Assignment
	licenses    map[string]model.License

	gen generation
}

func NewAssignmentView(client *api.Client, ident *model.Identity) (*AssignmentView, error) {
	caps, err := requireView(ident, rbac.ScreenAssignments)
	if err != nil {
		return nil, err
	}
	return &AssignmentView{
		client: client,
		Caps:   caps,
		Phase:  PhaseIdle,
	}, nil
}

// Load fetches all assignments plus the license collection used to derive
// each row's validity state. The license fetch degrades to an empty map.
func (v *AssignmentView) Load(ctx context.Context) error {
	gen := v.gen.next()
	v.Phase = PhaseLoading

	licenses := map[string]model.License{}
	page, err := v.client.Licenses(ctx, 0, 100, "")
	if err != nil {
		log.Warn("Failed to fetch licenses for assignment view", "error", err)
	} else {
		for _, lic := range page.Content {
			licenses[lic.LicenseKey] = lic
		}
	}

	assignments, err := v.client.Assignments(ctx)
	if !v.gen.current(gen) {
		log.Debug("Discarding superseded assignment load", "generation", gen)
		return nil
	}
	if err != nil {
		v.Phase = PhaseErrored
		v.Err = err
		v.Assignments = nil
		v.licenses = nil
		return err
	}

	v.Phase = PhaseLoaded
	v.Err = nil
	v.Assignments = assignments
	v.licenses = licenses
	return nil
}

// LicenseFor resolves an assignment's license, if it was fetched.
func (v *AssignmentView) LicenseFor(licenseKey string) (model.License, bool) {
	lic, ok := v.licenses[licenseKey]
	return lic, ok
}

// Rows derives the presentation state of each assignment at now.
func (v *AssignmentView) Rows(now time.Time) []AssignmentRow {
	rows := make([]AssignmentRow, 0, len(v.Assignments))
	for _, a := range v.Assignments {
		lic := v.licenses[a.LicenseKey]
		percent := metrics.ValidityPercent(lic.ValidFrom, lic.ValidTo, now)
		rows = append(rows, AssignmentRow{
			Assignment:      a,
			ValidityPercent: percent,
			BarTier:         metrics.BarTier(percent),
			StatusTier:      metrics.StatusTier(lic.ValidFrom, lic.ValidTo, now),
		})
	}
	return rows
}
