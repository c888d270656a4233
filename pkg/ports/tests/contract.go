package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/ports"
)

// QuestCatalogContractTest is a reusable test suite that verifies if an adapter complies with ports.QuestCatalog.
// setupData must hold the quests the catalog was seeded with.
func QuestCatalogContractTest(t *testing.T, catalog ports.QuestCatalog, setupData []domain.Quest) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for _, want := range setupData {
			got, err := catalog.Get(ctx, want.ID)
			if err != nil {
				t.Fatalf("unexpected error getting quest %s: %v", want.ID, err)
			}
			if got.ID != want.ID || got.Title != want.Title {
				t.Errorf("quest mismatch for %s. got %q/%q, want %q/%q", want.ID, got.ID, got.Title, want.ID, want.Title)
			}
			if len(got.Components) != len(want.Components) {
				t.Errorf("component count mismatch for %s. got %d, want %d", want.ID, len(got.Components), len(want.Components))
			}
			if got.Rewards.Exp != want.Rewards.Exp || got.Rewards.Gold != want.Rewards.Gold {
				t.Errorf("rewards mismatch for %s. got %+v, want %+v", want.ID, got.Rewards, want.Rewards)
			}
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := catalog.Get(ctx, "non-existent-quest")
		if !errors.Is(err, ports.ErrQuestNotFound) {
			t.Errorf("expected ErrQuestNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		quests, err := catalog.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing quests: %v", err)
		}

		if len(quests) != len(setupData) {
			t.Errorf("expected %d quests, got %d", len(setupData), len(quests))
		}

		found := make(map[string]bool)
		for _, q := range quests {
			found[q.ID] = true
		}
		for _, want := range setupData {
			if !found[want.ID] {
				t.Errorf("expected quest %s in list", want.ID)
			}
		}
		for i := 1; i < len(quests); i++ {
			if quests[i-1].ID > quests[i].ID {
				t.Errorf("list is not ordered by id: %s before %s", quests[i-1].ID, quests[i].ID)
			}
		}
	})
}
