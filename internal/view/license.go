package view

import (
	"context"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/metrics"
	"github.com/martinsuchenak/lictrack/internal/model"
	"github.com/martinsuchenak/lictrack/internal/rbac"
)

// LicenseView is the license repository screen: a paged license list with
// a server-side vendor filter, reference collections for name resolution
// and usage percentages, and a lazily-expanded assignment detail row.
type LicenseView struct {
	client   *api.Client
	pageSize int

	Caps rbac.Capabilities

	Phase       string
	Err         error
	Licenses    []model.License
	CurrentPage int // 1-based
	TotalPages  int

	Vendors     []model.Vendor
	Assignments []model.Assignment

	VendorFilter string

	ExpandedKey         string
	ExpandedAssignments []model.Assignment

	gen generation
}

func NewLicenseView(client *api.Client, ident *model.Identity, pageSize int) (*LicenseView, error) {
	caps, err := requireView(ident, rbac.ScreenLicenses)
	if err != nil {
		return nil, err
	}
	return &LicenseView{
		client:      client,
		pageSize:    pageSize,
		Caps:        caps,
		Phase:       PhaseIdle,
		CurrentPage: 1,
		TotalPages:  1,
	}, nil
}

// LoadReferences fetches the vendor list and the global assignment list
// used for vendor names and usage percentages. Each degrades to an empty
// collection on failure without failing the screen.
func (v *LicenseView) LoadReferences(ctx context.Context) {
	vendors, err := v.client.Vendors(ctx)
	if err != nil {
		log.Warn("Failed to fetch vendors", "error", err)
		vendors = nil
	}
	v.Vendors = vendors

	assignments, err := v.client.Assignments(ctx)
	if err != nil {
		log.Warn("Failed to fetch assignments", "error", err)
		assignments = nil
	}
	v.Assignments = assignments
}

// Load fetches the current license page with the active vendor filter.
func (v *LicenseView) Load(ctx context.Context) error {
	gen := v.gen.next()
	v.Phase = PhaseLoading

	page, err := v.client.Licenses(ctx, v.CurrentPage-1, v.pageSize, v.VendorFilter)
	if !v.gen.current(gen) {
		log.Debug("Discarding superseded license load", "generation", gen)
		return nil
	}
	if err != nil {
		v.Phase = PhaseErrored
		v.Err = err
		v.Licenses = nil
		v.CurrentPage = 1
		v.TotalPages = 1
		return err
	}

	v.Phase = PhaseLoaded
	v.Err = nil
	v.Licenses = page.Content
	v.CurrentPage = page.CurrentPage + 1
	v.TotalPages = page.TotalPages
	if v.TotalPages < 1 {
		v.TotalPages = 1
	}
	return nil
}

func (v *LicenseView) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.CurrentPage = page
}

// SetVendorFilter changes the server-side vendor filter and resets
// pagination to page 1.
func (v *LicenseView) SetVendorFilter(vendorID string) {
	v.VendorFilter = vendorID
	v.CurrentPage = 1
}

// VendorName resolves a vendor id against the fetched vendor list,
// falling back to the raw id.
func (v *LicenseView) VendorName(vendorID string) string {
	for _, vendor := range v.Vendors {
		if vendor.VendorID == vendorID {
			return vendor.VendorName
		}
	}
	return vendorID
}

// UsagePercent computes the license's usage from the global assignment
// counts; over 100 means over-allocated.
func (v *LicenseView) UsagePercent(lic model.License) int {
	assigned := 0
	for _, a := range v.Assignments {
		if a.LicenseKey == lic.LicenseKey {
			assigned++
		}
	}
	return metrics.UsagePercent(assigned, lic.MaxUsage)
}

// ToggleExpand expands a license row, lazily fetching its assignments, or
// collapses it when the same row is toggled again.
func (v *LicenseView) ToggleExpand(ctx context.Context, licenseKey string) error {
	if v.ExpandedKey == licenseKey {
		v.ExpandedKey = ""
		v.ExpandedAssignments = nil
		return nil
	}
	v.ExpandedKey = licenseKey
	assignments, err := v.client.AssignmentsByLicense(ctx, licenseKey)
	if err != nil {
		v.ExpandedAssignments = nil
		return err
	}
	v.ExpandedAssignments = assignments
	return nil
}

// Delete removes a license and re-fetches the current page.
func (v *LicenseView) Delete(ctx context.Context, licenseKey string) error {
	if !v.Caps.CanDelete {
		return ErrPermissionDenied
	}
	if err := v.client.DeleteLicense(ctx, licenseKey); err != nil {
		return err
	}
	log.Info("License deleted", "license_key", licenseKey)
	return v.Load(ctx)
}
