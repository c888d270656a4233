package runtime

import (
	"maps"

	"github.com/aretw0/grunberg/pkg/domain"
)

// setFlag emits FLAG_UPDATED when the key existed and FLAG_SET otherwise, never both.
func (tx *transition) setFlag(s *domain.GameState, a domain.SetFlag) *domain.GameState {
	next := shallow(s)
	flags := maps.Clone(s.Flags)
	if flags == nil {
		flags = domain.Flags{}
	}
	old, existed := flags[a.Key]
	flags[a.Key] = a.Value
	next.Flags = flags

	if existed {
		tx.emit(domain.EventFlagUpdated, domain.FlagUpdatedPayload{FlagID: a.Key, OldValue: old, NewValue: a.Value})
	} else {
		tx.emit(domain.EventFlagSet, domain.FlagSetPayload{FlagID: a.Key, Value: a.Value})
	}
	return next
}

// loadState adopts the supplied aggregate verbatim. A nil state is ignored.
func (tx *transition) loadState(s *domain.GameState, a domain.LoadState) *domain.GameState {
	if a.State == nil {
		return s
	}
	tx.emit(domain.EventGameLoaded, domain.TimestampPayload{Timestamp: domain.UnixMilli(tx.now)})
	return a.State
}

func (tx *transition) updatePlaytime(s *domain.GameState, a domain.UpdatePlaytime) *domain.GameState {
	next := shallow(s)
	next.Metadata.Playtime = a.Seconds
	return next
}
