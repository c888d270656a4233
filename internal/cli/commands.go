package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/grunberg/internal/presentation/graph"
	"github.com/aretw0/grunberg/internal/presentation/tui"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/persistence"
)

// CharacterInput describes `grunberg new`. Nil stats fall back to the race's base stats.
type CharacterInput struct {
	Name  string
	Race  string
	Class string
	Male  bool
	Stats *domain.CharacterStats
	Force bool
}

// NewCharacter creates a character, starting a fresh game, and saves it.
func NewCharacter(ctx context.Context, rt *Runtime, w io.Writer, in CharacterInput) error {
	race, err := matchRace(in.Race)
	if err != nil {
		return err
	}
	class, err := matchClass(in.Class)
	if err != nil {
		return err
	}

	c := domain.Character{Name: strings.TrimSpace(in.Name), Race: race, Class: class, Gender: in.Male}
	if in.Stats != nil {
		c.Stats = *in.Stats
	} else {
		c.Stats = domain.RaceBaseStats[race]
	}
	if err := domain.ValidatePointBuy(c); err != nil {
		return err
	}

	if rt.Game.HasSave(ctx) && !in.Force {
		return fmt.Errorf("a save already exists; use --force to overwrite it")
	}

	rt.Game.Reset()
	rt.Game.CreateCharacter(c)
	if !rt.Game.SaveGame(ctx) {
		return fmt.Errorf("failed to save the new character")
	}
	printSystemMessage(w, "%s the %s %s enters the dungeon.", c.Name, c.Race, c.Class)
	return nil
}

func matchRace(s string) (domain.Race, error) {
	if s == "" {
		return domain.RaceHuman, nil
	}
	for _, r := range domain.Races {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown race %q (choose from %v)", s, domain.Races)
}

func matchClass(s string) (domain.Class, error) {
	if s == "" {
		return domain.ClassWarrior, nil
	}
	for _, c := range domain.Classes {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown class %q (choose from %v)", s, domain.Classes)
}

// Output formats for Status.
const (
	FormatSheet = "sheet"
	FormatPlain = "plain"
	FormatJSON  = "json"
)

// Status prints the live state.
func Status(rt *Runtime, w io.Writer, format string) error {
	state := rt.Game.State()
	switch format {
	case FormatJSON:
		return writeJSON(w, state)
	case FormatPlain:
		out, err := tui.NewPlainRenderer()(tui.CharacterSheet(state))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case FormatSheet, "":
		out, err := tui.NewRenderer(0)(tui.CharacterSheet(state))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

// Act dispatches one action given in wire form and saves the result.
// payload is JSON; a bare word that is not valid JSON is taken as a string.
func Act(ctx context.Context, rt *Runtime, w io.Writer, actionType, payload string) error {
	var raw any
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &raw); err != nil {
			raw = payload
		}
	}

	action, err := domain.DecodeAction(actionType, raw)
	if err != nil {
		return err
	}

	var events []domain.Event
	for _, kind := range domain.EventKinds {
		unsub := rt.Game.Subscribe(kind, func(e domain.Event) { events = append(events, e) })
		defer unsub()
	}

	rt.Game.Dispatch(action)
	if !rt.Game.SaveGame(ctx) {
		return fmt.Errorf("action applied but the save failed")
	}

	printed := 0
	for _, e := range events {
		if e.Kind == domain.EventGameSaved {
			continue
		}
		data, _ := json.Marshal(e.Payload)
		printSystemMessage(w, "%s %s", e.Kind, data)
		printed++
	}
	if printed == 0 {
		printSystemMessage(w, "%s changed nothing.", action.Type())
	}
	return nil
}

// QuestList prints the catalog, marking quests by their progress in the save.
func QuestList(ctx context.Context, rt *Runtime, w io.Writer) error {
	quests, err := rt.Game.Quests(ctx)
	if err != nil {
		return err
	}
	progress := rt.Game.State().Quests
	for _, q := range quests {
		status := string(domain.QuestAvailable)
		switch {
		case progress.ActiveIndex(q.ID) >= 0:
			status = string(domain.QuestActive)
		case slices.Contains(progress.CompletedQuests, q.ID):
			status = string(domain.QuestCompleted)
		case slices.Contains(progress.FailedQuests, q.ID):
			status = string(domain.QuestFailed)
		}
		fmt.Fprintf(w, "%-20s %-10s %-12s %s\n", q.ID, q.Type, status, q.Title)
	}
	return nil
}

// QuestStart starts a catalog quest and saves.
func QuestStart(ctx context.Context, rt *Runtime, w io.Writer, id string) error {
	if _, err := rt.Game.StartQuestByID(ctx, id); err != nil {
		return err
	}
	if !rt.Game.SaveGame(ctx) {
		return fmt.Errorf("quest started but the save failed")
	}
	printSystemMessage(w, "Quest '%s' started.", id)
	return nil
}

// QuestGraph prints the catalog as a Mermaid flowchart, optionally colored by progress.
func QuestGraph(ctx context.Context, rt *Runtime, w io.Writer, withProgress bool) error {
	quests, err := rt.Game.Quests(ctx)
	if err != nil {
		return err
	}
	var overlay *graph.QuestOverlay
	if withProgress {
		overlay = graph.OverlayFrom(rt.Game.State().Quests)
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(quests, overlay))
	return err
}

// SaveInfo reports the save slot and its envelope version.
func SaveInfo(ctx context.Context, rt *Runtime, w io.Writer) error {
	key := rt.Game.SaveKey()
	ts, ok := rt.Game.SaveTimestamp(ctx)
	if !ok {
		fmt.Fprintf(w, "%s: no save\n", key)
		return nil
	}
	fmt.Fprintf(w, "%s: saved at %s\n", key, formatMillis(ts))
	if s := rt.Game.State(); s.HasCharacter() {
		fmt.Fprintf(w, "character: %s (level %d)\n", s.Character.Name, levelOf(s))
	}
	return nil
}

// SaveExport writes the export document into dir.
func SaveExport(rt *Runtime, w io.Writer, dir string) error {
	path, err := rt.Game.ExportTo(dir)
	if err != nil {
		return err
	}
	printSystemMessage(w, "Exported to %s", path)
	return nil
}

// SaveImport validates a save document, adopts it and writes it to the slot.
func SaveImport(ctx context.Context, rt *Runtime, w io.Writer, path string) error {
	if err := rt.Game.ImportFile(ctx, path); err != nil {
		return err
	}
	if !rt.Game.SaveGame(ctx) {
		return fmt.Errorf("import succeeded but the save failed")
	}
	printSystemMessage(w, "Imported %s", path)
	return nil
}

// SaveRemove deletes the save slot.
func SaveRemove(ctx context.Context, rt *Runtime, w io.Writer) error {
	if !rt.Game.DeleteSave(ctx) {
		return fmt.Errorf("failed to delete save '%s'", rt.Game.SaveKey())
	}
	printSystemMessage(w, "Removed save '%s'", rt.Game.SaveKey())
	return nil
}

// Schema prints the JSON Schema of the save document.
func Schema(w io.Writer) error {
	data, err := persistence.EnvelopeSchema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func levelOf(s *domain.GameState) int {
	if s.CharacterStatus == nil {
		return 0
	}
	return s.CharacterStatus.Level
}

