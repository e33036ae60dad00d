package forms

import (
	"context"
	"regexp"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/model"
)

var (
	deviceIDPattern = regexp.MustCompile(`^[A-Z]{3}-[A-Z]{3}-[0-9]{3}$`)
	// Dotted-quad shape only; octet ranges are the backend's concern.
	ipPattern = regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)
)

// DeviceForm creates or edits a device. Existing non-nil means edit, in
// which case the device id is immutable and not re-validated.
type DeviceForm struct {
	client   *api.Client
	Existing *model.Device

	Input model.Device
	State string
}

func NewDeviceForm(client *api.Client, existing *model.Device) *DeviceForm {
	f := &DeviceForm{
		client:   client,
		Existing: existing,
		State:    StateIdle,
		Input:    model.Device{Status: model.StatusActive},
	}
	if existing != nil {
		f.Input = *existing
	}
	return f
}

// Validate checks the form input and returns every field failure.
func (f *DeviceForm) Validate() *Errors {
	e := &Errors{}
	if f.Existing == nil && !deviceIDPattern.MatchString(f.Input.DeviceID) {
		e.Add("deviceId", "must follow pattern: RTR-BLR-001")
	}
	requireField(e, "type", f.Input.Type)
	if !ipPattern.MatchString(f.Input.IPAddress) {
		e.Add("ipAddress", "invalid IP address format")
	}
	requireField(e, "location", f.Input.Location)
	requireField(e, "model", f.Input.Model)
	validateEnum(e, "status", f.Input.Status, model.DeviceStatuses)
	return e
}

// Submit validates and then creates or updates the device. Validation
// failures come back as *Errors without any request being issued.
func (f *DeviceForm) Submit(ctx context.Context) error {
	if f.State == StateSubmitting {
		return ErrBusy
	}
	if e := f.Validate(); e.HasErrors() {
		return e
	}

	f.State = StateSubmitting
	defer func() { f.State = StateIdle }()

	var err error
	if f.Existing != nil {
		err = f.client.UpdateDevice(ctx, &f.Input)
	} else {
		err = f.client.CreateDevice(ctx, &f.Input)
	}
	if err != nil {
		return err
	}
	log.Info("Device saved", "device_id", f.Input.DeviceID, "edit", f.Existing != nil)
	return nil
}
