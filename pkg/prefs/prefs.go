// Package prefs reconciles and applies the user's display preferences. The
// theme lives in two places, a client-side store and a cookie the server can
// read, and both are kept in step.
package prefs

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	// DefaultTheme applies when neither the store nor the cookie has a value.
	DefaultTheme = ThemeDark
)

// ErrUnknownTheme reports a theme other than light or dark.
var ErrUnknownTheme = errors.New("prefs: unknown theme")

// Preferences are passed explicitly to everything that renders.
type Preferences struct {
	Theme string `json:"theme"`
}

// Default returns the preferences of a first visit.
func Default() Preferences {
	return Preferences{Theme: DefaultTheme}
}

// Sync lists which side of the pair is stale after Reconcile.
type Sync struct {
	Store  bool
	Cookie bool
}

// Reconcile picks the effective theme. The store wins over the cookie and the
// cookie over the default. Values are not validated here; callers pass them
// through ParseTheme when they come from user input.
func Reconcile(stored, cookie string) (Preferences, Sync) {
	stored = strings.TrimSpace(stored)
	cookie = strings.TrimSpace(cookie)

	theme := stored
	switch {
	case theme != "":
	case cookie != "":
		theme = cookie
	default:
		theme = DefaultTheme
	}
	return Preferences{Theme: theme}, Sync{
		Store:  stored == "",
		Cookie: cookie != theme,
	}
}

// ParseTheme normalises a theme chosen by the user.
func ParseTheme(raw string) (string, error) {
	switch theme := strings.ToLower(strings.TrimSpace(raw)); theme {
	case ThemeDark, ThemeLight:
		return theme, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, raw)
	}
}

// Store persists the theme on the client side.
type Store interface {
	Theme() (string, bool)
	SetTheme(theme string)
}

// MemoryStore is a Store held in memory, safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	theme string
	set   bool
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Theme() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme, s.set
}

func (s *MemoryStore) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.set = true
}
