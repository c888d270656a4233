package runtime

import "github.com/aretw0/grunberg/pkg/domain"

// createCharacter overwrites any existing character with a fresh starting status.
func (tx *transition) createCharacter(s *domain.GameState, a domain.CreateCharacter) *domain.GameState {
	next := shallow(s)
	c := a.Character
	next.Character = &c
	next.CharacterStatus = domain.NewCharacterStatus(c.Stats)

	tx.emit(domain.EventCharacterCreated, domain.CharacterCreatedPayload{
		CharacterName:  c.Name,
		CharacterClass: c.Class,
	})
	return next
}

// updateCharacterStatus is a no-op until a character exists.
func (tx *transition) updateCharacterStatus(s *domain.GameState, a domain.UpdateCharacterStatus) *domain.GameState {
	if s.CharacterStatus == nil {
		return s
	}
	next := shallow(s)
	status := a.Patch.Apply(*s.CharacterStatus)
	next.CharacterStatus = &status

	tx.emit(domain.EventCharacterStatusUpdated, a.Patch)
	return next
}

func (tx *transition) updatePosition(s *domain.GameState, a domain.UpdatePosition) *domain.GameState {
	next := shallow(s)
	next.Position = a.Position

	tx.emit(domain.EventPositionChanged, a.Position)
	if s.Position.Floor != a.Position.Floor {
		tx.emit(domain.EventFloorChanged, domain.FloorChangedPayload{
			OldFloor: s.Position.Floor,
			NewFloor: a.Position.Floor,
		})
	}
	return next
}
