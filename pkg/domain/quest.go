package domain

import "slices"

// QuestType classifies a quest.
type QuestType string

const (
	QuestMain        QuestType = "main"
	QuestSide        QuestType = "side"
	QuestExploration QuestType = "exploration"
	QuestDaily       QuestType = "daily"
)

// QuestStatus is the lifecycle stage of a quest.
type QuestStatus string

const (
	QuestAvailable QuestStatus = "available"
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

// ComponentType tags a QuestComponent variant.
type ComponentType string

const (
	ComponentDefeatEnemy   ComponentType = "defeat_enemy"
	ComponentReachLocation ComponentType = "reach_location"
	ComponentCollectItem   ComponentType = "collect_item"
	ComponentTalkToNPC     ComponentType = "talk_to_npc"
)

// QuestComponent is one objective of a quest. The trailing fields belong to
// the variant named by Type.
type QuestComponent struct {
	ID              string        `json:"id"`
	Type            ComponentType `json:"type"`
	TargetID        string        `json:"targetId"`
	Count           int           `json:"count"`
	CurrentProgress int           `json:"currentProgress"`
	Description     string        `json:"description"`

	EnemyType  string `json:"enemyType,omitempty"`
	Floor      *int   `json:"floor,omitempty"`
	LocationID string `json:"locationId,omitempty"`
	ItemID     string `json:"itemId,omitempty"`
	NPCID      string `json:"npcId,omitempty"`
}

// Done reports whether the objective has reached its count.
func (c QuestComponent) Done() bool {
	return c.CurrentProgress >= c.Count
}

// QuestRewards are granted by whoever reacts to QUEST_COMPLETED; the engine only reports them.
type QuestRewards struct {
	Exp   int      `json:"exp"`
	Gold  int      `json:"gold"`
	Items []string `json:"items,omitempty"`
}

// Quest is a quest definition plus its live progress.
type Quest struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Type         QuestType        `json:"type"`
	Status       QuestStatus      `json:"status"`
	Components   []QuestComponent `json:"components"`
	Rewards      QuestRewards     `json:"rewards"`
	NextQuestIDs []string         `json:"nextQuestIds,omitempty"`
	Requirements []string         `json:"requirements,omitempty"`
}

// QuestPatch is a partial Quest used by UPDATE_QUEST. Nil fields are left untouched.
type QuestPatch struct {
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Type         *QuestType       `json:"type,omitempty"`
	Status       *QuestStatus     `json:"status,omitempty"`
	Components   []QuestComponent `json:"components,omitempty"`
	Rewards      *QuestRewards    `json:"rewards,omitempty"`
	NextQuestIDs []string         `json:"nextQuestIds,omitempty"`
	Requirements []string         `json:"requirements,omitempty"`
}

// Apply returns a copy of q with every set field of the patch overwritten.
func (p QuestPatch) Apply(q Quest) Quest {
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Description != nil {
		q.Description = *p.Description
	}
	if p.Type != nil {
		q.Type = *p.Type
	}
	if p.Status != nil {
		q.Status = *p.Status
	}
	if p.Components != nil {
		q.Components = slices.Clone(p.Components)
	}
	if p.Rewards != nil {
		q.Rewards = *p.Rewards
	}
	if p.NextQuestIDs != nil {
		q.NextQuestIDs = slices.Clone(p.NextQuestIDs)
	}
	if p.Requirements != nil {
		q.Requirements = slices.Clone(p.Requirements)
	}
	return q
}

// QuestProgress partitions quests. A quest id lives in at most one partition
// when the progress is driven solely by actions.
type QuestProgress struct {
	ActiveQuests    []Quest  `json:"activeQuests"`
	CompletedQuests []string `json:"completedQuests"`
	AvailableQuests []string `json:"availableQuests"`
	FailedQuests    []string `json:"failedQuests"`
}

// ActiveIndex returns the position of id among the active quests, or -1.
func (qp QuestProgress) ActiveIndex(id string) int {
	return slices.IndexFunc(qp.ActiveQuests, func(q Quest) bool { return q.ID == id })
}

// PartitionOf lists every partition containing id.
func (qp QuestProgress) PartitionOf(id string) []QuestStatus {
	var out []QuestStatus
	if qp.ActiveIndex(id) >= 0 {
		out = append(out, QuestActive)
	}
	if slices.Contains(qp.CompletedQuests, id) {
		out = append(out, QuestCompleted)
	}
	if slices.Contains(qp.AvailableQuests, id) {
		out = append(out, QuestAvailable)
	}
	if slices.Contains(qp.FailedQuests, id) {
		out = append(out, QuestFailed)
	}
	return out
}
