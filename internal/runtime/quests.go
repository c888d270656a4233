package runtime

import (
	"slices"

	"github.com/aretw0/grunberg/pkg/domain"
)

func without(ids []string, id string) []string {
	if !slices.Contains(ids, id) {
		return ids
	}
	return slices.DeleteFunc(slices.Clone(ids), func(x string) bool { return x == id })
}

func appendOnce(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(slices.Clone(ids), id)
}

// startQuest activates a quest with no prerequisite check. The id is taken out
// of every other partition and an existing active record is replaced.
func (tx *transition) startQuest(s *domain.GameState, a domain.StartQuest) *domain.GameState {
	next := shallow(s)
	q := a.Quest
	q.Status = domain.QuestActive

	active := slices.DeleteFunc(slices.Clone(s.Quests.ActiveQuests), func(x domain.Quest) bool { return x.ID == q.ID })
	next.Quests.ActiveQuests = append(active, q)
	next.Quests.AvailableQuests = without(s.Quests.AvailableQuests, q.ID)
	next.Quests.CompletedQuests = without(s.Quests.CompletedQuests, q.ID)
	next.Quests.FailedQuests = without(s.Quests.FailedQuests, q.ID)

	tx.emit(domain.EventQuestStarted, domain.QuestPayload{QuestID: q.ID})
	return next
}

// updateQuest merges a patch into an active quest. It emits nothing.
func (tx *transition) updateQuest(s *domain.GameState, a domain.UpdateQuest) *domain.GameState {
	idx := s.Quests.ActiveIndex(a.QuestID)
	if idx < 0 {
		return s
	}
	next := shallow(s)
	active := slices.Clone(s.Quests.ActiveQuests)
	active[idx] = a.Patch.Apply(active[idx])
	next.Quests.ActiveQuests = active
	return next
}

// completeQuest only acts on active quests; anything else is dropped without an event.
func (tx *transition) completeQuest(s *domain.GameState, a domain.CompleteQuest) *domain.GameState {
	idx := s.Quests.ActiveIndex(a.QuestID)
	if idx < 0 {
		return s
	}
	quest := s.Quests.ActiveQuests[idx]

	next := shallow(s)
	next.Quests.ActiveQuests = slices.Delete(slices.Clone(s.Quests.ActiveQuests), idx, idx+1)
	next.Quests.CompletedQuests = appendOnce(s.Quests.CompletedQuests, a.QuestID)

	rewards := quest.Rewards
	rewards.Items = slices.Clone(quest.Rewards.Items)
	tx.emit(domain.EventQuestCompleted, domain.QuestCompletedPayload{QuestID: a.QuestID, Rewards: rewards})
	return next
}

// failQuest records the failure whether or not the quest was active and always emits.
func (tx *transition) failQuest(s *domain.GameState, a domain.FailQuest) *domain.GameState {
	next := shallow(s)
	if s.Quests.ActiveIndex(a.QuestID) >= 0 {
		next.Quests.ActiveQuests = slices.DeleteFunc(slices.Clone(s.Quests.ActiveQuests), func(x domain.Quest) bool { return x.ID == a.QuestID })
	}
	next.Quests.AvailableQuests = without(s.Quests.AvailableQuests, a.QuestID)
	next.Quests.CompletedQuests = without(s.Quests.CompletedQuests, a.QuestID)
	next.Quests.FailedQuests = appendOnce(s.Quests.FailedQuests, a.QuestID)

	tx.emit(domain.EventQuestFailed, domain.QuestPayload{QuestID: a.QuestID})
	return next
}
