package domain

import "slices"

// EffectType distinguishes buffs from debuffs.
type EffectType string

const (
	EffectBuff   EffectType = "buff"
	EffectDebuff EffectType = "debuff"
)

// StatModifier is the numeric part of a status effect. An empty Stat applies globally.
type StatModifier struct {
	Stat  string `json:"stat,omitempty"`
	Value int    `json:"value"`
}

// StatusEffect is a temporary buff or debuff on the character.
type StatusEffect struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     EffectType   `json:"type"`
	Duration int          `json:"duration"`
	Effect   StatModifier `json:"effect"`
}

// CharacterStatus is the live combat state of the character.
// HP and MP are not clamped to their maximums.
type CharacterStatus struct {
	HP             int            `json:"hp"`
	MaxHP          int            `json:"maxHp"`
	MP             int            `json:"mp"`
	MaxMP          int            `json:"maxMp"`
	Exp            int            `json:"exp"`
	ExpToNextLevel int            `json:"expToNextLevel"`
	Level          int            `json:"level"`
	CurrentStats   CharacterStats `json:"currentStats"`
	StatusEffects  []StatusEffect `json:"statusEffects"`
}

// NewCharacterStatus returns the starting status for a freshly created character.
func NewCharacterStatus(stats CharacterStats) *CharacterStatus {
	return &CharacterStatus{
		HP:             StartingHP,
		MaxHP:          StartingHP,
		MP:             StartingMP,
		MaxMP:          StartingMP,
		Exp:            0,
		ExpToNextLevel: StartingExpToNextLevel,
		Level:          1,
		CurrentStats:   stats,
		StatusEffects:  []StatusEffect{},
	}
}

// StatusPatch is a partial CharacterStatus. Nil fields are left untouched.
type StatusPatch struct {
	HP             *int            `json:"hp,omitempty"`
	MaxHP          *int            `json:"maxHp,omitempty"`
	MP             *int            `json:"mp,omitempty"`
	MaxMP          *int            `json:"maxMp,omitempty"`
	Exp            *int            `json:"exp,omitempty"`
	ExpToNextLevel *int            `json:"expToNextLevel,omitempty"`
	Level          *int            `json:"level,omitempty"`
	CurrentStats   *CharacterStats `json:"currentStats,omitempty"`
	StatusEffects  []StatusEffect  `json:"statusEffects,omitempty"`
}

// IsEmpty reports whether the patch sets no field.
func (p StatusPatch) IsEmpty() bool {
	return p.HP == nil && p.MaxHP == nil && p.MP == nil && p.MaxMP == nil &&
		p.Exp == nil && p.ExpToNextLevel == nil && p.Level == nil &&
		p.CurrentStats == nil && p.StatusEffects == nil
}

// Apply returns a copy of s with every set field of the patch overwritten.
func (p StatusPatch) Apply(s CharacterStatus) CharacterStatus {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.HP, p.HP)
	set(&s.MaxHP, p.MaxHP)
	set(&s.MP, p.MP)
	set(&s.MaxMP, p.MaxMP)
	set(&s.Exp, p.Exp)
	set(&s.ExpToNextLevel, p.ExpToNextLevel)
	set(&s.Level, p.Level)
	if p.CurrentStats != nil {
		s.CurrentStats = *p.CurrentStats
	}
	if p.StatusEffects != nil {
		s.StatusEffects = slices.Clone(p.StatusEffects)
	}
	return s
}
