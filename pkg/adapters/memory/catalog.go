package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/ports"
)

// Catalog implements ports.QuestCatalog using an in-memory map.
type Catalog struct {
	quests map[string]domain.Quest
}

// NewCatalog creates a catalog from quest definitions.
func NewCatalog(quests ...domain.Quest) (*Catalog, error) {
	m := make(map[string]domain.Quest, len(quests))
	for _, q := range quests {
		if q.ID == "" {
			return nil, fmt.Errorf("quest missing ID")
		}
		if _, dup := m[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quest ID %s", q.ID)
		}
		m[q.ID] = q
	}
	return &Catalog{quests: m}, nil
}

// Get retrieves a quest definition by ID.
func (c *Catalog) Get(ctx context.Context, id string) (domain.Quest, error) {
	q, ok := c.quests[id]
	if !ok {
		return domain.Quest{}, fmt.Errorf("%w: %s", ports.ErrQuestNotFound, id)
	}
	return q, nil
}

// List returns every quest ordered by ID.
func (c *Catalog) List(ctx context.Context) ([]domain.Quest, error) {
	keys := make([]string, 0, len(c.quests))
	for k := range c.quests {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]domain.Quest, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.quests[k])
	}
	return out, nil
}
