package settings

import (
	"context"
	"encoding/json"

	"github.com/kinomedia/kino/internal/catalog/domain"
	"github.com/kinomedia/kino/pkg/errors"
)

// Storage keys. The kino. prefix namespaces the application's entries.
const (
	KeyTheme        = "kino.theme"
	KeyCurrentUser  = "kino.current_user"
	KeyUsers        = "kino.users"
	KeyCatalogState = "kino.catalog_state"
)

// DefaultTheme is used before a preference has been saved.
const DefaultTheme = "light"

// Preferences exposes the typed entries stored in the settings store.
type Preferences struct {
	store *Store
}

// NewPreferences wraps a settings store.
func NewPreferences(store *Store) *Preferences {
	return &Preferences{store: store}
}

// Theme returns the saved theme name, or the default.
func (p *Preferences) Theme(ctx context.Context) string {
	theme, err := p.store.Get(ctx, KeyTheme)
	if err != nil {
		return DefaultTheme
	}
	return theme
}

// SetTheme saves the theme name.
func (p *Preferences) SetTheme(ctx context.Context, theme string) error {
	return p.store.Set(ctx, KeyTheme, theme)
}

// SaveCatalogState persists the serializable catalog state subset.
func (p *Preferences) SaveCatalogState(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "serializing catalog state", err)
	}
	return p.store.Set(ctx, KeyCatalogState, string(data))
}

// LoadCatalogState restores a persisted catalog state subset.
func (p *Preferences) LoadCatalogState(ctx context.Context) (domain.Snapshot, error) {
	data, err := p.store.Get(ctx, KeyCatalogState)
	if err != nil {
		return domain.Snapshot{}, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return domain.Snapshot{}, errors.Wrap(errors.ErrorTypeInternal, "parsing catalog state", err)
	}
	return snap, nil
}
