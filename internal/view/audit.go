package view

import (
	"context"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/model"
	"github.com/martinsuchenak/lictrack/internal/rbac"
)

// AuditView is the audit trail screen, visible to ADMIN and AUDITOR only.
type AuditView struct {
	client   *api.Client
	pageSize int

	Caps rbac.Capabilities

	Phase       string
	Err         error
	Logs        []model.AuditLogEntry
	CurrentPage int // 1-based
	TotalPages  int

	EntityType string
	EntityID   string
	Action     string
	User       string

	gen generation
}

func NewAuditView(client *api.Client, ident *model.Identity, pageSize int) (*AuditView, error) {
	caps, err := requireView(ident, rbac.ScreenAuditLogs)
	if err != nil {
		return nil, err
	}
	return &AuditView{
		client:      client,
		pageSize:    pageSize,
		Caps:        caps,
		Phase:       PhaseIdle,
		CurrentPage: 1,
		TotalPages:  1,
	}, nil
}

// SetFilters replaces all filters and resets pagination to page 1.
func (v *AuditView) SetFilters(entityType, entityID, action, user string) {
	v.EntityType = entityType
	v.EntityID = entityID
	v.Action = action
	v.User = user
	v.CurrentPage = 1
}

func (v *AuditView) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.CurrentPage = page
}

// Load fetches the current audit page. TotalPages is always taken from
// the response envelope.
func (v *AuditView) Load(ctx context.Context) error {
	gen := v.gen.next()
	v.Phase = PhaseLoading

	page, err := v.client.AuditLogs(ctx, api.AuditQuery{
		EntityType: v.EntityType,
		EntityID:   v.EntityID,
		Action:     v.Action,
		User:       v.User,
		Page:       v.CurrentPage - 1,
		Size:       v.pageSize,
	})
	if !v.gen.current(gen) {
		log.Debug("Discarding superseded audit load", "generation", gen)
		return nil
	}
	if err != nil {
		v.Phase = PhaseErrored
		v.Err = err
		v.Logs = nil
		v.CurrentPage = 1
		v.TotalPages = 1
		return err
	}

	v.Phase = PhaseLoaded
	v.Err = nil
	v.Logs = page.Content
	v.CurrentPage = page.CurrentPage + 1
	v.TotalPages = page.TotalPages
	if v.TotalPages < 1 {
		v.TotalPages = 1
	}
	return nil
}
