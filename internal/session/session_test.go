package session

import (
	"testing"

	"github.com/golang-jwt/jwt"

	"github.com/martinsuchenak/lictrack/internal/model"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTokenLifecycle(t *testing.T) {
	s := openStore(t)

	if _, err := s.Token(); err != ErrNotLoggedIn {
		t.Fatalf("fresh store Token() error = %v, want ErrNotLoggedIn", err)
	}

	if err := s.SaveToken("tok-1"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	got, err := s.Token()
	if err != nil || got != "tok-1" {
		t.Fatalf("Token() = %q, %v; want tok-1", got, err)
	}

	// A second login replaces the stored token.
	if err := s.SaveToken("tok-2"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if got, _ := s.Token(); got != "tok-2" {
		t.Fatalf("Token() after replace = %q, want tok-2", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Token(); err != ErrNotLoggedIn {
		t.Fatalf("Token() after Clear error = %v, want ErrNotLoggedIn", err)
	}
}

func TestIdentityFromClaims(t *testing.T) {
	s := openStore(t)
	tok := signedToken(t, jwt.MapClaims{"sub": "alice", "role": "ADMIN"})
	if err := s.SaveToken(tok); err != nil {
		t.Fatal(err)
	}

	ident, err := s.Identity()
	if err != nil {
		t.Fatalf("Identity: %v", err)
	}
	if ident.Username != "alice" || ident.Role != "ADMIN" {
		t.Errorf("Identity = %+v, want alice/ADMIN", ident)
	}
}

func TestIdentityFromAuthoritiesClaim(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "bob", "authorities": []string{"AUDITOR"}})
	ident, err := DecodeIdentity(tok)
	if err != nil {
		t.Fatalf("DecodeIdentity: %v", err)
	}
	if ident.Role != "AUDITOR" {
		t.Errorf("Role = %q, want AUDITOR", ident.Role)
	}
}

func TestInvalidTokenClearsSession(t *testing.T) {
	s := openStore(t)
	if err := s.SaveToken("not-a-jwt"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Identity(); err == nil {
		t.Fatal("expected error decoding a garbage token")
	}
	if _, err := s.Token(); err != ErrNotLoggedIn {
		t.Fatalf("garbage token should have been cleared, got %v", err)
	}
}

func TestVendorCache(t *testing.T) {
	s := openStore(t)

	vendors := []model.Vendor{
		{VendorID: "V2", VendorName: "Palo Alto"},
		{VendorID: "V1", VendorName: "Cisco"},
	}
	if err := s.CacheVendors(vendors); err != nil {
		t.Fatalf("CacheVendors: %v", err)
	}

	got, err := s.CachedVendors()
	if err != nil {
		t.Fatalf("CachedVendors: %v", err)
	}
	if len(got) != 2 || got[0].VendorName != "Cisco" || got[1].VendorName != "Palo Alto" {
		t.Errorf("CachedVendors = %+v, want name-sorted Cisco, Palo Alto", got)
	}

	// Replacement wipes stale entries.
	if err := s.CacheVendors([]model.Vendor{{VendorID: "V3", VendorName: "SolarWinds"}}); err != nil {
		t.Fatal(err)
	}
	got, _ = s.CachedVendors()
	if len(got) != 1 || got[0].VendorID != "V3" {
		t.Errorf("CachedVendors after replace = %+v, want only V3", got)
	}
}
