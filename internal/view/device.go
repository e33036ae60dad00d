package view

import (
	"context"
	"sort"
	"strings"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/model"
	"github.com/martinsuchenak/lictrack/internal/rbac"
)

// DeviceView is the device inventory screen: one fetched page of devices,
// the location list derived from it, and the three client-side filters.
type DeviceView struct {
	client   *api.Client
	pageSize int

	Caps rbac.Capabilities

	Phase       string
	Err         error
	Devices     []model.Device
	Locations   []string
	CurrentPage int // 1-based
	TotalPages  int

	locationFilter string
	ipFilter       string
	idFilter       string

	gen generation
}

// NewDeviceView builds the screen for the given identity, rejecting roles
// that may not view it before anything is fetched.
func NewDeviceView(client *api.Client, ident *model.Identity, pageSize int) (*DeviceView, error) {
	caps, err := requireView(ident, rbac.ScreenDevices)
	if err != nil {
		return nil, err
	}
	return &DeviceView{
		client:      client,
		pageSize:    pageSize,
		Caps:        caps,
		Phase:       PhaseIdle,
		CurrentPage: 1,
		TotalPages:  1,
	}, nil
}

// Load fetches the current page. A load superseded by a newer one leaves
// the newer state untouched.
func (v *DeviceView) Load(ctx context.Context) error {
	gen := v.gen.next()
	v.Phase = PhaseLoading

	page, err := v.client.Devices(ctx, v.CurrentPage-1, v.pageSize)
	if !v.gen.current(gen) {
		log.Debug("Discarding superseded device load", "generation", gen)
		return nil
	}
	if err != nil {
		v.Phase = PhaseErrored
		v.Err = err
		v.Devices = nil
		v.Locations = nil
		v.CurrentPage = 1
		v.TotalPages = 1
		return err
	}

	v.Phase = PhaseLoaded
	v.Err = nil
	v.Devices = page.Content
	v.CurrentPage = page.CurrentPage + 1
	v.TotalPages = page.TotalPages
	if v.TotalPages < 1 {
		v.TotalPages = 1
	}
	v.Locations = uniqueLocations(page.Content)
	return nil
}

func uniqueLocations(devices []model.Device) []string {
	seen := map[string]bool{}
	var locations []string
	for _, d := range devices {
		if d.Location != "" && !seen[d.Location] {
			seen[d.Location] = true
			locations = append(locations, d.Location)
		}
	}
	sort.Strings(locations)
	return locations
}

// SetPage selects a page for the next Load.
func (v *DeviceView) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.CurrentPage = page
}

// Filter changes reset pagination to page 1.

func (v *DeviceView) SetLocationFilter(location string) {
	v.locationFilter = location
	v.CurrentPage = 1
}

func (v *DeviceView) SetIPFilter(ip string) {
	v.ipFilter = ip
	v.CurrentPage = 1
}

func (v *DeviceView) SetIDFilter(id string) {
	v.idFilter = id
	v.CurrentPage = 1
}

// Filtered applies the location, IP-substring, and device-ID-substring
// filters to the fetched page.
func (v *DeviceView) Filtered() []model.Device {
	filtered := v.Devices
	if v.locationFilter != "" {
		filtered = filterDevices(filtered, func(d model.Device) bool {
			return d.Location == v.locationFilter
		})
	}
	if needle := strings.ToLower(strings.TrimSpace(v.ipFilter)); needle != "" {
		filtered = filterDevices(filtered, func(d model.Device) bool {
			return strings.Contains(strings.ToLower(d.IPAddress), needle)
		})
	}
	if needle := strings.ToLower(strings.TrimSpace(v.idFilter)); needle != "" {
		filtered = filterDevices(filtered, func(d model.Device) bool {
			return strings.Contains(strings.ToLower(d.DeviceID), needle)
		})
	}
	return filtered
}

func filterDevices(devices []model.Device, keep func(model.Device) bool) []model.Device {
	var out []model.Device
	for _, d := range devices {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// Delete removes a device and re-fetches the current page. Restricted to
// roles with delete capability before any request goes out.
func (v *DeviceView) Delete(ctx context.Context, deviceID string) error {
	if !v.Caps.CanDelete {
		return ErrPermissionDenied
	}
	if err := v.client.DeleteDevice(ctx, deviceID); err != nil {
		return err
	}
	log.Info("Device deleted", "device_id", deviceID)
	return v.Load(ctx)
}
