package grunberg

import (
	"context"
	"io"

	"github.com/aretw0/grunberg/pkg/domain"
)

// SaveGame writes the current state to the save slot and announces GAME_SAVED on success.
func (g *Game) SaveGame(ctx context.Context) bool {
	at := g.now()
	if !g.gateway.Save(ctx, g.State()) {
		return false
	}
	g.announceSaved(at)
	return true
}

// LoadSave reads the save slot without touching the live state.
func (g *Game) LoadSave(ctx context.Context) (*domain.GameState, bool) {
	return g.gateway.Load(ctx)
}

// ContinueGame replaces the live state with the saved one.
// It returns false, leaving the state alone, when there is no usable save.
func (g *Game) ContinueGame(ctx context.Context) bool {
	state, ok := g.gateway.Load(ctx)
	if !ok {
		return false
	}
	g.Dispatch(domain.LoadState{State: state})
	return true
}

// HasSave reports whether the slot holds a parseable save.
func (g *Game) HasSave(ctx context.Context) bool {
	return g.gateway.HasSave(ctx)
}

// SaveTimestamp returns the save time in Unix milliseconds.
func (g *Game) SaveTimestamp(ctx context.Context) (int64, bool) {
	return g.gateway.SaveTimestamp(ctx)
}

// DeleteSave empties the save slot.
func (g *Game) DeleteSave(ctx context.Context) bool {
	return g.gateway.Delete(ctx)
}

// Export renders the current state as a downloadable save document.
func (g *Game) Export() (domain.ExportedSave, error) {
	return g.gateway.Export(g.State())
}

// ExportTo writes the export document into dir and returns its path.
func (g *Game) ExportTo(dir string) (string, error) {
	return g.gateway.ExportTo(g.State(), dir)
}

// Import validates a save document and adopts its state.
// The save slot is not written; autosave picks the new state up.
func (g *Game) Import(ctx context.Context, r io.Reader) error {
	state, err := g.gateway.Import(ctx, r)
	if err != nil {
		return err
	}
	g.Dispatch(domain.LoadState{State: state})
	return nil
}

// ImportFile is Import for a file on disk.
func (g *Game) ImportFile(ctx context.Context, path string) error {
	state, err := g.gateway.ImportFile(ctx, path)
	if err != nil {
		return err
	}
	g.Dispatch(domain.LoadState{State: state})
	return nil
}

// SaveKey returns the slot name used for persistence.
func (g *Game) SaveKey() string {
	return g.gateway.Key()
}
