// Package app wires a command invocation together: configuration,
// logging, the session store, and the API client.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/martinsuchenak/lictrack/internal/api"
	"github.com/martinsuchenak/lictrack/internal/config"
	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/model"
	"github.com/martinsuchenak/lictrack/internal/session"
)

type App struct {
	Config *config.Config
	Store  *session.Store
	Client *api.Client
}

// Open loads configuration, configures logging, and opens the session
// store under the data directory.
func Open() (*App, error) {
	cfg := config.Load()
	log.Configure(cfg.LogLevel, cfg.LogFormat)

	store, err := session.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return &App{
		Config: cfg,
		Store:  store,
		Client: api.New(cfg.ServerURL, store),
	}, nil
}

func (a *App) Close() {
	a.Store.Close()
}

// Identity resolves the logged-in identity, mapping a missing session to
// a friendly instruction.
func (a *App) Identity() (*model.Identity, error) {
	ident, err := a.Store.Identity()
	if errors.Is(err, session.ErrNotLoggedIn) {
		return nil, fmt.Errorf("not logged in: run 'lictrack login' first")
	}
	if err != nil {
		return nil, fmt.Errorf("session invalid, log in again: %w", err)
	}
	return ident, nil
}

// Confirm asks the user before a destructive action. assumeYes skips the
// prompt.
func Confirm(prompt string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
