package forms

import (
	"context"
	"errors"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/model"
)

// ErrVendorsLoading is returned by Submit while the vendor list is still
// being fetched, so a license can never reference an unresolved vendor.
var ErrVendorsLoading = errors.New("vendors still loading")

// LicenseForm creates or edits a license. The vendor list arrives
// asynchronously via SetVendors; submission is held until it lands, and
// a failed vendor load surfaces as its own error state rather than
// blocking forever.
type LicenseForm struct {
	client   *api.Client
	Existing *model.License

	Input model.License
	State string

	Vendors        []model.Vendor
	VendorsLoading bool
	VendorsErr     error
}

func NewLicenseForm(client *api.Client, existing *model.License) *LicenseForm {
	f := &LicenseForm{
		client:   client,
		Existing: existing,
		State:    StateIdle,
		Input: model.License{
			LicenseType: model.TypePerDevice,
			MaxUsage:    1,
		},
		VendorsLoading: true,
	}
	if existing != nil {
		f.Input = *existing
		if len(f.Input.ValidFrom) > 10 {
			f.Input.ValidFrom = f.Input.ValidFrom[:10]
		}
		if len(f.Input.ValidTo) > 10 {
			f.Input.ValidTo = f.Input.ValidTo[:10]
		}
	}
	return f
}

// LoadVendors fetches the vendor options, recording failure as a
// distinct error state.
func (f *LicenseForm) LoadVendors(ctx context.Context) {
	vendors, err := f.client.Vendors(ctx)
	f.SetVendors(vendors, err)
}

// SetVendors delivers the vendor fetch result.
func (f *LicenseForm) SetVendors(vendors []model.Vendor, err error) {
	f.VendorsLoading = false
	if err != nil {
		log.Warn("Failed to load vendors for license form", "error", err)
		f.VendorsErr = err
		f.Vendors = nil
		return
	}
	f.VendorsErr = nil
	f.Vendors = vendors
}

func (f *LicenseForm) Validate() *Errors {
	e := &Errors{}
	if f.Existing == nil {
		requireField(e, "licenseKey", f.Input.LicenseKey)
	}
	requireField(e, "softwareName", f.Input.SoftwareName)
	requireField(e, "vendorId", f.Input.VendorID)
	validateDate(e, "validFrom", f.Input.ValidFrom)
	validateDate(e, "validTo", f.Input.ValidTo)
	validateEnum(e, "licenseType", f.Input.LicenseType, model.LicenseTypes)
	if f.Input.MaxUsage <= 0 {
		e.Add("maxUsage", "must be a positive integer")
	}
	return e
}

func (f *LicenseForm) Submit(ctx context.Context) error {
	if f.State == StateSubmitting {
		return ErrBusy
	}
	if f.VendorsLoading {
		return ErrVendorsLoading
	}
	if e := f.Validate(); e.HasErrors() {
		return e
	}

	f.State = StateSubmitting
	defer func() { f.State = StateIdle }()

	var err error
	if f.Existing != nil {
		err = f.client.UpdateLicense(ctx, &f.Input)
	} else {
		err = f.client.CreateLicense(ctx, &f.Input)
	}
	if err != nil {
		return err
	}
	log.Info("License saved", "license_key", f.Input.LicenseKey, "edit", f.Existing != nil)
	return nil
}
