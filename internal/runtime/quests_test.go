package runtime_test

import (
	"testing"

	"github.com/aretw0/grunberg/internal/runtime"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rats() domain.Quest {
	return domain.Quest{
		ID:     "rats",
		Title:  "Cellar Rats",
		Type:   domain.QuestSide,
		Status: domain.QuestAvailable,
		Components: []domain.QuestComponent{
			{ID: "kill", Type: domain.ComponentDefeatEnemy, TargetID: "rat", Count: 5, EnemyType: "rat"},
		},
		Rewards: domain.QuestRewards{Exp: 50, Gold: 10, Items: []string{"cheese"}},
	}
}

func TestStartQuest(t *testing.T) {
	s := domain.NewState(now)
	s.Quests.AvailableQuests = []string{"rats", "wolves"}

	next, evs := step(t, s, domain.StartQuest{Quest: rats()})

	require.Len(t, next.Quests.ActiveQuests, 1)
	assert.Equal(t, domain.QuestActive, next.Quests.ActiveQuests[0].Status)
	assert.Equal(t, []string{"wolves"}, next.Quests.AvailableQuests)
	assert.Equal(t, []string{"rats", "wolves"}, s.Quests.AvailableQuests)
	assert.Equal(t, []domain.EventKind{domain.EventQuestStarted}, kinds(evs))
	assert.Equal(t, domain.QuestPayload{QuestID: "rats"}, evs[0].Payload)
}

func TestStartQuest_Restart(t *testing.T) {
	s, _ := runtime.Reduce(domain.NewState(now), domain.StartQuest{Quest: rats()}, now)
	s, _ = runtime.Reduce(s, domain.CompleteQuest{QuestID: "rats"}, now)

	next, _ := step(t, s, domain.StartQuest{Quest: rats()})
	again, _ := step(t, next, domain.StartQuest{Quest: rats()})

	assert.Equal(t, []domain.QuestStatus{domain.QuestActive}, again.Quests.PartitionOf("rats"))
	assert.Len(t, again.Quests.ActiveQuests, 1)
}

func TestUpdateQuest(t *testing.T) {
	s, _ := runtime.Reduce(domain.NewState(now), domain.StartQuest{Quest: rats()}, now)

	comps := rats().Components
	comps[0].CurrentProgress = 3
	title := "Cellar Rats (3/5)"
	next, evs := step(t, s, domain.UpdateQuest{QuestID: "rats", Patch: domain.QuestPatch{Title: &title, Components: comps}})

	q := next.Quests.ActiveQuests[0]
	assert.Equal(t, title, q.Title)
	assert.Equal(t, 3, q.Components[0].CurrentProgress)
	assert.Equal(t, 0, s.Quests.ActiveQuests[0].Components[0].CurrentProgress)
	assert.Empty(t, evs)

	same, evs := step(t, s, domain.UpdateQuest{QuestID: "unknown", Patch: domain.QuestPatch{Title: &title}})
	assert.Same(t, s, same)
	assert.Empty(t, evs)
}

func TestCompleteQuest(t *testing.T) {
	s, _ := runtime.Reduce(domain.NewState(now), domain.StartQuest{Quest: rats()}, now)

	next, evs := step(t, s, domain.CompleteQuest{QuestID: "rats"})

	assert.Empty(t, next.Quests.ActiveQuests)
	assert.Equal(t, []string{"rats"}, next.Quests.CompletedQuests)
	require.Len(t, evs, 1)
	assert.Equal(t, domain.QuestCompletedPayload{
		QuestID: "rats",
		Rewards: domain.QuestRewards{Exp: 50, Gold: 10, Items: []string{"cheese"}},
	}, evs[0].Payload)
}

func TestCompleteQuest_NotActiveIsDropped(t *testing.T) {
	s := domain.NewState(now)
	next, evs := step(t, s, domain.CompleteQuest{QuestID: "rats"})
	assert.Same(t, s, next)
	assert.Empty(t, evs)
	assert.Empty(t, next.Quests.CompletedQuests)
}

func TestFailQuest(t *testing.T) {
	s, _ := runtime.Reduce(domain.NewState(now), domain.StartQuest{Quest: rats()}, now)

	next, evs := step(t, s, domain.FailQuest{QuestID: "rats"})
	assert.Empty(t, next.Quests.ActiveQuests)
	assert.Equal(t, []string{"rats"}, next.Quests.FailedQuests)
	assert.Equal(t, []domain.EventKind{domain.EventQuestFailed}, kinds(evs))
}

func TestFailQuest_EmitsEvenWhenNotActive(t *testing.T) {
	s := domain.NewState(now)
	next, evs := step(t, s, domain.FailQuest{QuestID: "ghost"})
	assert.Equal(t, []string{"ghost"}, next.Quests.FailedQuests)
	require.Len(t, evs, 1)
	assert.Equal(t, domain.QuestPayload{QuestID: "ghost"}, evs[0].Payload)
}

func TestQuestPartitionsStayDisjoint(t *testing.T) {
	ids := []string{"a", "b", "c"}
	quest := func(id string) domain.Quest { q := rats(); q.ID = id; return q }
	actions := []domain.Action{
		domain.StartQuest{Quest: quest("a")},
		domain.StartQuest{Quest: quest("b")},
		domain.CompleteQuest{QuestID: "a"},
		domain.FailQuest{QuestID: "a"},
		domain.StartQuest{Quest: quest("a")},
		domain.FailQuest{QuestID: "c"},
		domain.StartQuest{Quest: quest("c")},
		domain.CompleteQuest{QuestID: "c"},
		domain.CompleteQuest{QuestID: "c"},
		domain.FailQuest{QuestID: "b"},
		domain.FailQuest{QuestID: "b"},
	}

	s := domain.NewState(now)
	s.Quests.AvailableQuests = []string{"a", "b", "c"}
	for i, a := range actions {
		s, _ = runtime.Reduce(s, a, now)
		for _, id := range ids {
			assert.LessOrEqual(t, len(s.Quests.PartitionOf(id)), 1, "after action %d (%s), quest %s", i, a.Type(), id)
		}
	}
	assert.Equal(t, []domain.QuestStatus{domain.QuestFailed}, s.Quests.PartitionOf("b"))
	assert.Equal(t, []domain.QuestStatus{domain.QuestCompleted}, s.Quests.PartitionOf("c"))
	assert.Equal(t, []domain.QuestStatus{domain.QuestActive}, s.Quests.PartitionOf("a"))
}
