// Package loam loads quest definitions from a directory of Markdown,
// YAML or JSON documents through the Loam library.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/aretw0/loam"
)

// Catalog adapts a Loam repository to ports.QuestCatalog.
// The document body becomes the quest description when the frontmatter has none.
type Catalog struct {
	Repo *loam.TypedRepository[QuestMetadata]
}

// New creates a new Loam quest catalog.
func New(repo *loam.TypedRepository[QuestMetadata]) *Catalog {
	return &Catalog{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it in a Catalog.
// Strict mode keeps numbers as json.Number across Markdown, YAML and JSON documents.
func Open(dir string) (*Catalog, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[QuestMetadata](repo)), nil
}

// Get retrieves a quest by ID. Loam resolves "rats" to rats.md (or .json/.yaml).
func (c *Catalog) Get(ctx context.Context, id string) (domain.Quest, error) {
	doc, err := c.Repo.Get(ctx, id)
	if err != nil {
		// Loam does not export a typed not-found error; treat any lookup miss as one.
		return domain.Quest{}, fmt.Errorf("%w: %s (%v)", ports.ErrQuestNotFound, id, err)
	}
	return toQuest(doc.ID, doc.Data, doc.Content)
}

// List returns every quest document ordered by ID.
// Two documents resolving to the same ID are rejected.
func (c *Catalog) List(ctx context.Context) ([]domain.Quest, error) {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	quests := make([]domain.Quest, 0, len(docs))
	for _, doc := range docs {
		q, err := toQuest(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, err
		}
		if existing, ok := seen[q.ID]; ok {
			return nil, fmt.Errorf("collision detected: quest '%s' is defined in both '%s' and '%s'", q.ID, existing, doc.ID)
		}
		seen[q.ID] = doc.ID
		quests = append(quests, q)
	}

	sort.Slice(quests, func(i, j int) bool { return quests[i].ID < quests[j].ID })
	return quests, nil
}

func toQuest(docID string, meta QuestMetadata, content string) (domain.Quest, error) {
	rawID := meta.ID
	if rawID == "" {
		rawID = docID
	}
	id := trimExtension(rawID)

	q := domain.Quest{
		ID:           id,
		Title:        meta.Title,
		Description:  meta.Description,
		Type:         domain.QuestType(meta.Type),
		Status:       domain.QuestAvailable,
		Components:   make([]domain.QuestComponent, 0, len(meta.Components)),
		NextQuestIDs: meta.Next,
		Requirements: meta.Requirements,
		Rewards: domain.QuestRewards{
			Exp:   meta.Rewards.Exp,
			Gold:  meta.Rewards.Gold,
			Items: meta.Rewards.Items,
		},
	}
	if q.Type == "" {
		q.Type = domain.QuestSide
	}
	if q.Description == "" {
		q.Description = strings.TrimSpace(content)
	}

	for i, raw := range meta.Components {
		var comp domain.QuestComponent
		if err := domain.Decode(raw, &comp); err != nil {
			return domain.Quest{}, fmt.Errorf("quest %s: component %d: %w", id, i, err)
		}
		if comp.ID == "" {
			comp.ID = fmt.Sprintf("%s-%d", id, i+1)
		}
		q.Components = append(q.Components, comp)
	}
	return q, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
