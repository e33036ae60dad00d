package forms

import (
	"context"
	"errors"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/model"
)

// ErrAlreadyAssigned is the local duplicate rejection: the chosen license
// is already bound to this device, so no request is issued.
var ErrAlreadyAssigned = errors.New("license is already assigned to this device")

// AssignmentForm binds a license to a fixed device. The device's current
// assignments are fetched up front so duplicates are rejected locally.
type AssignmentForm struct {
	client *api.Client

	DeviceID   string
	LicenseKey string
	State      string

	Licenses []model.License
	existing []model.Assignment
}

func NewAssignmentForm(client *api.Client, deviceID string) *AssignmentForm {
	return &AssignmentForm{
		client:   client,
		DeviceID: deviceID,
		State:    StateIdle,
	}
}

// Load fetches the license choices and the device's current assignments.
func (f *AssignmentForm) Load(ctx context.Context) error {
	page, err := f.client.Licenses(ctx, 0, 100, "")
	if err != nil {
		return err
	}
	f.Licenses = page.Content

	existing, err := f.client.AssignmentsByDevice(ctx, f.DeviceID)
	if err != nil {
		return err
	}
	f.existing = existing
	return nil
}

// AlreadyAssigned reports whether the currently chosen license is
// already bound to the device.
func (f *AssignmentForm) AlreadyAssigned() bool {
	for _, a := range f.existing {
		if a.LicenseKey == f.LicenseKey {
			return true
		}
	}
	return false
}

// Submit creates the assignment, stamped with today's date. Duplicates
// are rejected before any request goes out.
func (f *AssignmentForm) Submit(ctx context.Context) error {
	if f.State == StateSubmitting {
		return ErrBusy
	}
	e := &Errors{}
	requireField(e, "licenseKey", f.LicenseKey)
	if e.HasErrors() {
		return e
	}
	if f.AlreadyAssigned() {
		return ErrAlreadyAssigned
	}

	f.State = StateSubmitting
	defer func() { f.State = StateIdle }()

	assignment := &model.Assignment{
		DeviceID:   f.DeviceID,
		LicenseKey: f.LicenseKey,
		AssignedOn: today(),
	}
	if err := f.client.CreateAssignment(ctx, assignment); err != nil {
		return err
	}
	log.Info("License assigned", "device_id", f.DeviceID, "license_key", f.LicenseKey)
	return nil
}
