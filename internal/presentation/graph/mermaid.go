package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/grunberg/pkg/domain"
)

// QuestOverlay marks quests by their progress in a save.
type QuestOverlay struct {
	Active    []string
	Completed []string
	Failed    []string
}

// OverlayFrom builds an overlay from quest progress.
func OverlayFrom(p domain.QuestProgress) *QuestOverlay {
	o := &QuestOverlay{Completed: p.CompletedQuests, Failed: p.FailedQuests}
	for _, q := range p.ActiveQuests {
		o.Active = append(o.Active, q.ID)
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the quest chain.
// It applies semantic styling:
// - Main: ([Stadium])
// - Exploration: [/Parallelogram/]
// - Daily: {{Hexagon}}
// - Default (side): [Rectangle]
// Requirements are solid edges into a quest; follow-ups are dotted edges out of it.
func GenerateMermaid(quests []domain.Quest, overlay *QuestOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, q := range quests {
		safeID := sanitizeMermaidID(q.ID)

		opener, closer := "[", "]"
		switch q.Type {
		case domain.QuestMain:
			opener, closer = "([", "])"
		case domain.QuestExploration:
			opener, closer = "[/", "/]"
		case domain.QuestDaily:
			opener, closer = "{{", "}}"
		}

		label := q.ID
		if q.Title != "" {
			label = strings.ReplaceAll(q.Title, "\"", "'")
		}
		if q.Rewards.Gold > 0 || q.Rewards.Exp > 0 {
			label = fmt.Sprintf("%s <br/> %d xp / %d gold", label, q.Rewards.Exp, q.Rewards.Gold)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)

		for _, req := range q.Requirements {
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(req), safeID)
		}
		for _, next := range q.NextQuestIDs {
			fmt.Fprintf(&sb, "    %s -.-> %s\n", safeID, sanitizeMermaidID(next))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Progress Styles\n")
		// black text keeps contrast on both themes
		sb.WriteString("    classDef completed fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")

		writeClass(&sb, overlay.Completed, "completed")
		writeClass(&sb, overlay.Failed, "failed")
		writeClass(&sb, overlay.Active, "active")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, ids []string, class string) {
	seen := make(map[string]bool)
	for _, id := range ids {
		safeID := sanitizeMermaidID(id)
		if safeID == "" || seen[safeID] {
			continue
		}
		seen[safeID] = true
		fmt.Fprintf(sb, "    class %s %s;\n", safeID, class)
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
