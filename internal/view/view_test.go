package view

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/model"
)

var (
	admin    = &model.Identity{Username: "root", Role: model.RoleAdmin}
	engineer = &model.Identity{Username: "eng", Role: model.RoleEngineer}
	auditor  = &model.Identity{Username: "aud", Role: model.RoleAuditor}
)

func devicePage(devices ...model.Device) model.Page[model.Device] {
	return model.Page[model.Device]{Content: devices, CurrentPage: 0, TotalPages: 1}
}

func TestDeviceIDFilter(t *testing.T) {
	v := &DeviceView{Devices: []model.Device{
		{DeviceID: "RTR-BLR-001", IPAddress: "10.0.0.1", Location: "Bangalore"},
		{DeviceID: "SWI-DEL-002", IPAddress: "10.0.1.2", Location: "Delhi"},
	}}

	v.SetIDFilter("RTR")
	got := v.Filtered()
	if len(got) != 1 || got[0].DeviceID != "RTR-BLR-001" {
		t.Fatalf("Filtered() = %+v, want exactly RTR-BLR-001", got)
	}

	// Case-insensitive, trimmed.
	v.SetIDFilter("  rtr ")
	if got := v.Filtered(); len(got) != 1 {
		t.Fatalf("lowercase filter should still match, got %+v", got)
	}
}

func TestDeviceIPAndLocationFilters(t *testing.T) {
	v := &DeviceView{Devices: []model.Device{
		{DeviceID: "RTR-BLR-001", IPAddress: "192.168.1.10", Location: "Bangalore"},
		{DeviceID: "RTR-BLR-002", IPAddress: "192.168.2.10", Location: "Bangalore"},
		{DeviceID: "SWI-DEL-001", IPAddress: "10.0.0.1", Location: "Delhi"},
	}}

	v.SetIPFilter("192.168")
	if got := v.Filtered(); len(got) != 2 {
		t.Fatalf("IP substring filter matched %d rows, want 2", len(got))
	}

	v.SetIPFilter("")
	v.SetLocationFilter("Delhi")
	got := v.Filtered()
	if len(got) != 1 || got[0].DeviceID != "SWI-DEL-001" {
		t.Fatalf("location filter got %+v", got)
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	v := &DeviceView{CurrentPage: 3}
	v.SetIPFilter("10.")
	if v.CurrentPage != 1 {
		t.Errorf("IP filter change left page at %d, want 1", v.CurrentPage)
	}
	v.CurrentPage = 4
	v.SetLocationFilter("Delhi")
	if v.CurrentPage != 1 {
		t.Errorf("location filter change left page at %d, want 1", v.CurrentPage)
	}
	v.CurrentPage = 2
	v.SetIDFilter("RTR")
	if v.CurrentPage != 1 {
		t.Errorf("ID filter change left page at %d, want 1", v.CurrentPage)
	}
}

func TestDeviceLoadDerivesLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(devicePage(
			model.Device{DeviceID: "A", Location: "Delhi"},
			model.Device{DeviceID: "B", Location: "Bangalore"},
			model.Device{DeviceID: "C", Location: "Delhi"},
			model.Device{DeviceID: "D"},
		))
	}))
	defer srv.Close()

	v, err := NewDeviceView(api.New(srv.URL, nil), admin, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if v.Phase != PhaseLoaded {
		t.Errorf("Phase = %s", v.Phase)
	}
	want := []string{"Bangalore", "Delhi"}
	if len(v.Locations) != 2 || v.Locations[0] != want[0] || v.Locations[1] != want[1] {
		t.Errorf("Locations = %v, want %v", v.Locations, want)
	}
}

func TestDeviceLoadFailureClearsStaleRows(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(devicePage(model.Device{DeviceID: "RTR-BLR-001"}))
	}))
	defer srv.Close()

	v, err := NewDeviceView(api.New(srv.URL, nil), admin, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(v.Devices) != 1 {
		t.Fatalf("expected one device after first load")
	}

	fail.Store(true)
	if err := v.Load(context.Background()); err == nil {
		t.Fatal("expected error from failed load")
	}
	if v.Phase != PhaseErrored {
		t.Errorf("Phase = %s, want errored", v.Phase)
	}
	if v.Devices != nil {
		t.Errorf("stale rows retained after failed load: %+v", v.Devices)
	}
	if v.Err == nil {
		t.Error("Err not set after failed load")
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	inFlight := make(chan struct{})
	release := make(chan struct{})
	var second atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !second.Swap(true) {
			close(inFlight)
			<-release
			json.NewEncoder(w).Encode(devicePage(model.Device{DeviceID: "OLD-OLD-001"}))
			return
		}
		json.NewEncoder(w).Encode(devicePage(model.Device{DeviceID: "NEW-NEW-001"}))
	}))
	defer srv.Close()

	v, err := NewDeviceView(api.New(srv.URL, nil), admin, 5)
	if err != nil {
		t.Fatal(err)
	}

	// The slow load parks inside the handler until released; the
	// superseding load runs here once the slow request is in flight, and
	// the stale response is only let through after it completes. The
	// view itself is only ever touched from this goroutine or from the
	// slow load while this goroutine is parked on a channel.
	slowDone := make(chan error, 1)
	go func() { slowDone <- v.Load(context.Background()) }()

	<-inFlight
	if err := v.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	close(release)
	if err := <-slowDone; err != nil {
		t.Fatalf("superseded load returned error: %v", err)
	}

	if len(v.Devices) != 1 || v.Devices[0].DeviceID != "NEW-NEW-001" {
		t.Fatalf("stale response overwrote newer state: %+v", v.Devices)
	}
	if v.Phase != PhaseLoaded {
		t.Errorf("phase = %q after superseded load, want %q", v.Phase, PhaseLoaded)
	}
}

func TestDashboardStaleResponseDiscarded(t *testing.T) {
	inFlight := make(chan struct{})
	release := make(chan struct{})
	var second atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !second.Swap(true) {
			close(inFlight)
			<-release
			json.NewEncoder(w).Encode(model.DashboardOverview{TotalDevices: 1})
			return
		}
		json.NewEncoder(w).Encode(model.DashboardOverview{TotalDevices: 2})
	}))
	defer srv.Close()

	v := NewDashboardView(api.New(srv.URL, nil))

	slowDone := make(chan error, 1)
	go func() { slowDone <- v.Load(context.Background()) }()

	<-inFlight
	if err := v.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	close(release)
	if err := <-slowDone; err != nil {
		t.Fatalf("superseded load returned error: %v", err)
	}

	if v.Overview == nil || v.Overview.TotalDevices != 2 {
		t.Fatalf("stale overview overwrote newer state: %+v", v.Overview)
	}
}

func TestRejectedRoleNeverFetches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()
	client := api.New(srv.URL, nil)

	if _, err := NewAuditView(client, engineer, 5); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("ENGINEER audit view error = %v, want ErrPermissionDenied", err)
	}
	if _, err := NewDeviceView(client, nil, 5); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("unauthenticated device view error = %v, want ErrPermissionDenied", err)
	}
	if hits.Load() != 0 {
		t.Errorf("rejected screens issued %d requests, want 0", hits.Load())
	}
}

func TestDeviceDeleteDeniedLocally(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			hits.Add(1)
		}
		json.NewEncoder(w).Encode(devicePage())
	}))
	defer srv.Close()

	v, err := NewDeviceView(api.New(srv.URL, nil), engineer, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Delete(context.Background(), "RTR-BLR-001"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("ENGINEER delete error = %v, want ErrPermissionDenied", err)
	}
	if hits.Load() != 0 {
		t.Errorf("denied delete issued %d DELETE requests, want 0", hits.Load())
	}
}

func TestLicenseUsageAndVendorResolution(t *testing.T) {
	v := &LicenseView{
		Vendors: []model.Vendor{{VendorID: "V1", VendorName: "Cisco"}},
		Assignments: []model.Assignment{
			{DeviceID: "A", LicenseKey: "LIC-1"},
			{DeviceID: "B", LicenseKey: "LIC-1"},
			{DeviceID: "C", LicenseKey: "LIC-1"},
			{DeviceID: "A", LicenseKey: "LIC-2"},
		},
	}

	if got := v.UsagePercent(model.License{LicenseKey: "LIC-1", MaxUsage: 2}); got != 150 {
		t.Errorf("UsagePercent = %d, want 150 (over-allocated)", got)
	}
	if got := v.UsagePercent(model.License{LicenseKey: "LIC-2", MaxUsage: 4}); got != 25 {
		t.Errorf("UsagePercent = %d, want 25", got)
	}
	if got := v.VendorName("V1"); got != "Cisco" {
		t.Errorf("VendorName(V1) = %q", got)
	}
	if got := v.VendorName("V9"); got != "V9" {
		t.Errorf("VendorName fallback = %q, want raw id", got)
	}
}

func TestLicenseExpandIsLazyAndToggles(t *testing.T) {
	var byLicenseHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/assignments/by-license/"):
			byLicenseHits.Add(1)
			json.NewEncoder(w).Encode([]model.Assignment{
				{DeviceID: "RTR-BLR-001", LicenseKey: "LIC-1", DeviceLocation: "Bangalore"},
			})
		case r.URL.Path == "/api/licenses":
			json.NewEncoder(w).Encode(model.Page[model.License]{
				Content:    []model.License{{LicenseKey: "LIC-1"}, {LicenseKey: "LIC-2"}},
				TotalPages: 1,
			})
		default:
			json.NewEncoder(w).Encode([]model.Assignment{})
		}
	}))
	defer srv.Close()

	v, err := NewLicenseView(api.New(srv.URL, nil), admin, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if byLicenseHits.Load() != 0 {
		t.Fatal("per-license assignments fetched eagerly")
	}

	if err := v.ToggleExpand(context.Background(), "LIC-1"); err != nil {
		t.Fatal(err)
	}
	if v.ExpandedKey != "LIC-1" || len(v.ExpandedAssignments) != 1 {
		t.Fatalf("expand state = %q/%d", v.ExpandedKey, len(v.ExpandedAssignments))
	}
	if byLicenseHits.Load() != 1 {
		t.Errorf("expand issued %d fetches, want 1", byLicenseHits.Load())
	}

	// Second toggle collapses without another fetch.
	if err := v.ToggleExpand(context.Background(), "LIC-1"); err != nil {
		t.Fatal(err)
	}
	if v.ExpandedKey != "" || v.ExpandedAssignments != nil {
		t.Error("second toggle should collapse the row")
	}
	if byLicenseHits.Load() != 1 {
		t.Errorf("collapse issued a fetch")
	}
}

func TestAuditTotalPagesFollowsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Page[model.AuditLogEntry]{
			Content:     []model.AuditLogEntry{{LogID: 1, EntityType: "DEVICE", Action: "DELETE"}},
			CurrentPage: 0,
			TotalPages:  7,
		})
	}))
	defer srv.Close()

	v, err := NewAuditView(api.New(srv.URL, nil), auditor, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if v.TotalPages != 7 {
		t.Errorf("TotalPages = %d, want 7 (must track the envelope)", v.TotalPages)
	}

	v.SetFilters("DEVICE", "", "DELETE", "")
	if v.CurrentPage != 1 {
		t.Errorf("filter change left page at %d, want 1", v.CurrentPage)
	}
}

func TestTruncateDetails(t *testing.T) {
	long := strings.Repeat("x", 60)
	got := TruncateDetails(long)
	if got != strings.Repeat("x", 50)+"..." {
		t.Errorf("TruncateDetails = %q", got)
	}
	if got := TruncateDetails("short"); got != "short" {
		t.Errorf("TruncateDetails(short) = %q", got)
	}

	// Multibyte text truncates at character boundaries, never mid-rune.
	wide := strings.Repeat("ü", 60)
	got = TruncateDetails(wide)
	if got != strings.Repeat("ü", 50)+"..." {
		t.Errorf("TruncateDetails(wide) = %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("TruncateDetails(wide) produced invalid UTF-8: %q", got)
	}
}

func TestAlertRowsSplitLevelAndIcon(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	v := &AlertsView{Alerts: []model.License{
		{LicenseKey: "EXP", ValidTo: "2026-08-01"},
		{LicenseKey: "SOON", ValidTo: "2026-09-05"},
		{LicenseKey: "LATER", ValidTo: "2026-09-25"},
	}}

	rows := v.Rows(now)
	if rows[0].Level != "critical" || rows[0].Icon != "none" {
		t.Errorf("expired row = level %q icon %q, want critical badge and no icon", rows[0].Level, rows[0].Icon)
	}
	if rows[1].Level != "critical" || rows[1].Icon != "critical" {
		t.Errorf("soon row = level %q icon %q", rows[1].Level, rows[1].Icon)
	}
	if rows[2].Level != "warning" || rows[2].Icon != "warning" {
		t.Errorf("later row = level %q icon %q", rows[2].Level, rows[2].Icon)
	}
}
