package ports

import (
	"context"
	"io"

	"github.com/aretw0/grunberg/pkg/domain"
)

// GameSession is the driving port that transports (HTTP, MCP) use.
// The root grunberg.Game implements it.
type GameSession interface {
	// Dispatch applies an action and returns the committed state.
	Dispatch(action domain.Action) *domain.GameState

	// State returns the current snapshot. Treat it as read-only.
	State() *domain.GameState

	// Subscribe registers fn for kind and returns a function that unregisters it.
	Subscribe(kind domain.EventKind, fn func(domain.Event)) (unsubscribe func())

	SaveGame(ctx context.Context) bool
	ContinueGame(ctx context.Context) bool
	HasSave(ctx context.Context) bool
	SaveTimestamp(ctx context.Context) (int64, bool)
	DeleteSave(ctx context.Context) bool

	Export() (domain.ExportedSave, error)
	Import(ctx context.Context, r io.Reader) error
}
