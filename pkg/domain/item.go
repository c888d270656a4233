package domain

// ItemType tags the Item variant.
type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemArmor      ItemType = "armor"
	ItemConsumable ItemType = "consumable"
	ItemQuest      ItemType = "quest"
	ItemMisc       ItemType = "misc"
)

// Rarity of an item.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// EquipmentSlot names one of the six equipment slots.
type EquipmentSlot string

const (
	SlotWeapon    EquipmentSlot = "weapon"
	SlotHead      EquipmentSlot = "head"
	SlotChest     EquipmentSlot = "chest"
	SlotLegs      EquipmentSlot = "legs"
	SlotFeet      EquipmentSlot = "feet"
	SlotAccessory EquipmentSlot = "accessory"
)

// EquipmentSlots lists every slot in display order.
var EquipmentSlots = []EquipmentSlot{SlotWeapon, SlotHead, SlotChest, SlotLegs, SlotFeet, SlotAccessory}

// Valid reports whether s names one of the six slots.
func (s EquipmentSlot) Valid() bool {
	switch s {
	case SlotWeapon, SlotHead, SlotChest, SlotLegs, SlotFeet, SlotAccessory:
		return true
	}
	return false
}

// ConsumableEffectType is what a consumable does when used.
type ConsumableEffectType string

const (
	EffectHealHP   ConsumableEffectType = "heal_hp"
	EffectHealMP   ConsumableEffectType = "heal_mp"
	EffectBuffStat ConsumableEffectType = "buff_stat"
)

// ConsumableEffect is carried by consumable items only.
type ConsumableEffect struct {
	Type     ConsumableEffectType `json:"type"`
	Value    int                  `json:"value"`
	Duration *int                 `json:"duration,omitempty"`
}

// Item is a tagged union over ItemType. The common fields are always present;
// Damage, Defense, Slot and RequiredLevel belong to weapons and armor, Effect to consumables.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        ItemType `json:"type"`
	Rarity      Rarity   `json:"rarity"`
	Description string   `json:"description"`
	Stackable   bool     `json:"stackable"`
	MaxStack    *int     `json:"maxStack,omitempty"`
	Value       int      `json:"value"`

	Damage        int               `json:"damage,omitempty"`
	Defense       int               `json:"defense,omitempty"`
	Slot          EquipmentSlot     `json:"slot,omitempty"`
	RequiredLevel int               `json:"requiredLevel,omitempty"`
	Effect        *ConsumableEffect `json:"effect,omitempty"`
}

// EquipSlot resolves where an item can be equipped.
// Weapons go to the weapon slot; armor goes to its own non-weapon slot.
// Everything else is not equipable.
func (i Item) EquipSlot() (EquipmentSlot, bool) {
	switch i.Type {
	case ItemWeapon:
		return SlotWeapon, true
	case ItemArmor:
		if i.Slot.Valid() && i.Slot != SlotWeapon {
			return i.Slot, true
		}
		return "", false
	case ItemConsumable, ItemQuest, ItemMisc:
		return "", false
	default:
		return "", false
	}
}
