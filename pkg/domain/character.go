package domain

import (
	"fmt"
	"strings"
)

// Race of a character. Open string; the engine does not validate it.
type Race string

const (
	RaceHuman Race = "Human"
	RaceElf   Race = "Elf"
	RaceDwarf Race = "Dwarf"
	RaceOrc   Race = "Orc"
)

// Races lists the playable races in menu order.
var Races = []Race{RaceHuman, RaceElf, RaceDwarf, RaceOrc}

// Class of a character.
type Class string

const (
	ClassWarrior Class = "Warrior"
	ClassRogue   Class = "Rogue"
	ClassMage    Class = "Mage"
)

// Classes lists the playable classes in menu order.
var Classes = []Class{ClassWarrior, ClassRogue, ClassMage}

// Point-buy constants used by character creation front-ends.
const (
	InitialStatPoints = 15
	MinStatValue      = 1
	MaxStatValue      = 10
)

// CharacterStats are the three primary attributes.
type CharacterStats struct {
	Strength     int `json:"strength"`
	Agility      int `json:"agility"`
	Intelligence int `json:"intelligence"`
}

// Total returns the sum of all attributes.
func (s CharacterStats) Total() int {
	return s.Strength + s.Agility + s.Intelligence
}

// RaceBaseStats are the starting distributions offered per race.
var RaceBaseStats = map[Race]CharacterStats{
	RaceHuman: {Strength: 5, Agility: 5, Intelligence: 5},
	RaceElf:   {Strength: 3, Agility: 6, Intelligence: 6},
	RaceDwarf: {Strength: 7, Agility: 3, Intelligence: 5},
	RaceOrc:   {Strength: 8, Agility: 4, Intelligence: 3},
}

// Character is the player's identity. Gender is true for male.
type Character struct {
	Name   string         `json:"name"`
	Race   Race           `json:"race"`
	Gender bool           `json:"gender"`
	Class  Class          `json:"class"`
	Stats  CharacterStats `json:"stats"`
}

// ValidatePointBuy checks a character against the point-buy rules:
// a non-blank name, every stat within bounds and exactly InitialStatPoints spent.
// The engine never calls it; creation front-ends do.
func ValidatePointBuy(c Character) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("character name is required")
	}
	for name, v := range map[string]int{
		"strength":     c.Stats.Strength,
		"agility":      c.Stats.Agility,
		"intelligence": c.Stats.Intelligence,
	} {
		if v < MinStatValue || v > MaxStatValue {
			return fmt.Errorf("%s must be between %d and %d, got %d", name, MinStatValue, MaxStatValue, v)
		}
	}
	if total := c.Stats.Total(); total != InitialStatPoints {
		return fmt.Errorf("stats must total %d points, got %d", InitialStatPoints, total)
	}
	return nil
}
