package ports

import (
	"context"
	"errors"

	"github.com/aretw0/grunberg/pkg/domain"
)

// ErrQuestNotFound is returned by catalogs for unknown quest ids.
var ErrQuestNotFound = errors.New("quest not found")

// QuestCatalog is a read-only source of quest definitions.
// Starting a quest takes its definition from here; progress lives in the game state.
type QuestCatalog interface {
	// Get returns the definition of a quest.
	// Returns ErrQuestNotFound if the id is unknown.
	Get(ctx context.Context, id string) (domain.Quest, error)

	// List returns every quest definition, ordered by id.
	List(ctx context.Context) ([]domain.Quest, error)
}
