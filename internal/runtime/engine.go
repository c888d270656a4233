// Package runtime implements the state-transition engine: a pure function from
// (state, action) to (next state, events).
package runtime

import (
	"time"

	"github.com/aretw0/grunberg/pkg/domain"
)

// Engine applies actions to game states.
type Engine struct {
	now func() time.Time
}

// Option configures the Engine.
type Option func(*Engine)

// WithClock overrides the time source used for event and metadata timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Step applies action to state using the engine clock.
func (e *Engine) Step(state *domain.GameState, action domain.Action) (*domain.GameState, []domain.Event) {
	return Reduce(state, action, e.now())
}

// Reduce computes the state that follows action and the events it announces.
//
// The input is never mutated. Sections the action does not touch are shared
// between input and output; touched sections are fresh values. Actions outside
// the closed set (including pointers to action structs) return the input
// unchanged with no events. Reduce has no error paths.
func Reduce(state *domain.GameState, action domain.Action, now time.Time) (*domain.GameState, []domain.Event) {
	if state == nil {
		state = domain.NewState(now)
	}
	tx := &transition{now: now}

	var next *domain.GameState
	switch a := action.(type) {
	case domain.CreateCharacter:
		next = tx.createCharacter(state, a)
	case domain.UpdateCharacterStatus:
		next = tx.updateCharacterStatus(state, a)
	case domain.UpdatePosition:
		next = tx.updatePosition(state, a)
	case domain.AddItem:
		next = tx.addItem(state, a)
	case domain.RemoveItem:
		next = tx.removeItem(state, a)
	case domain.EquipItem:
		next = tx.equipItem(state, a)
	case domain.UnequipItem:
		next = tx.unequipItem(state, a)
	case domain.UpdateCurrency:
		next = tx.updateCurrency(state, a)
	case domain.StartQuest:
		next = tx.startQuest(state, a)
	case domain.UpdateQuest:
		next = tx.updateQuest(state, a)
	case domain.CompleteQuest:
		next = tx.completeQuest(state, a)
	case domain.FailQuest:
		next = tx.failQuest(state, a)
	case domain.SetFlag:
		next = tx.setFlag(state, a)
	case domain.LoadState:
		next = tx.loadState(state, a)
	case domain.ResetState:
		next = domain.NewState(now)
	case domain.UpdatePlaytime:
		next = tx.updatePlaytime(state, a)
	default:
		return state, nil
	}
	return next, tx.events
}

// transition collects the events of one Reduce call.
type transition struct {
	now    time.Time
	events []domain.Event
}

func (tx *transition) emit(kind domain.EventKind, payload any) {
	tx.events = append(tx.events, domain.NewEvent(kind, tx.now, payload))
}

// shallow returns a copy of s sharing every section.
func shallow(s *domain.GameState) *domain.GameState {
	next := *s
	return &next
}
