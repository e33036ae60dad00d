// Package view holds the per-screen view models: each owns its fetched
// collections, applies client-side filters, and exposes only the actions
// the current role permits. Screens move through an explicit
// idle → loading → loaded|errored machine, and every load carries a
// generation number so a response superseded by a newer load is discarded
// instead of overwriting fresher state.
package view

import (
	"errors"
	"fmt"

	"github.com/martinsuchenak/lictrack/internal/model"
	"github.com/martinsuchenak/lictrack/internal/rbac"
)

// Screen phases.
const (
	PhaseIdle    = "idle"
	PhaseLoading = "loading"
	PhaseLoaded  = "loaded"
	PhaseErrored = "errored"
)

// ErrPermissionDenied is returned before any request is issued when the
// current role may not view a screen.
var ErrPermissionDenied = errors.New("permission denied")

func requireView(ident *model.Identity, screen string) (rbac.Capabilities, error) {
	if ident == nil {
		return rbac.Capabilities{}, fmt.Errorf("%w: not authenticated", ErrPermissionDenied)
	}
	caps := rbac.For(ident.Role, screen)
	if !caps.CanView {
		return rbac.Capabilities{}, fmt.Errorf("%w: role %s may not view %s", ErrPermissionDenied, ident.Role, screen)
	}
	return caps, nil
}

// generation tracks load supersession for a screen.
type generation struct {
	n uint64
}

func (g *generation) next() uint64 {
	g.n++
	return g.n
}

func (g *generation) current(v uint64) bool {
	return g.n == v
}

// TruncateDetails shortens audit details to 50 characters for table
// display; the full text stays on the entry for tooltip use.
func TruncateDetails(s string) string {
	// Count characters, not bytes, so multibyte text never splits
	// mid-rune.
	runes := []rune(s)
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return s
}
