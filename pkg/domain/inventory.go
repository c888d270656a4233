package domain

// InventorySlot is a stack of one item.
type InventorySlot struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// Equipment holds at most one item per slot. Empty slots are nil and serialize as null.
type Equipment struct {
	Weapon    *Item `json:"weapon"`
	Head      *Item `json:"head"`
	Chest     *Item `json:"chest"`
	Legs      *Item `json:"legs"`
	Feet      *Item `json:"feet"`
	Accessory *Item `json:"accessory"`
}

// Get returns the item in a slot. Unknown slots report false.
func (e Equipment) Get(slot EquipmentSlot) (*Item, bool) {
	switch slot {
	case SlotWeapon:
		return e.Weapon, true
	case SlotHead:
		return e.Head, true
	case SlotChest:
		return e.Chest, true
	case SlotLegs:
		return e.Legs, true
	case SlotFeet:
		return e.Feet, true
	case SlotAccessory:
		return e.Accessory, true
	}
	return nil, false
}

// With returns a copy of e with slot set to item (nil empties it).
// Unknown slots return e unchanged.
func (e Equipment) With(slot EquipmentSlot, item *Item) Equipment {
	switch slot {
	case SlotWeapon:
		e.Weapon = item
	case SlotHead:
		e.Head = item
	case SlotChest:
		e.Chest = item
	case SlotLegs:
		e.Legs = item
	case SlotFeet:
		e.Feet = item
	case SlotAccessory:
		e.Accessory = item
	}
	return e
}

// CurrencyType names a currency.
type CurrencyType string

const (
	CurrencyGold CurrencyType = "gold"
	CurrencyGems CurrencyType = "gems"
)

// Currency balances. Never negative.
type Currency struct {
	Gold int `json:"gold"`
	Gems int `json:"gems"`
}

// Get returns the balance for a currency type.
func (c Currency) Get(t CurrencyType) (int, bool) {
	switch t {
	case CurrencyGold:
		return c.Gold, true
	case CurrencyGems:
		return c.Gems, true
	}
	return 0, false
}

// With returns a copy with the balance of t replaced.
func (c Currency) With(t CurrencyType, v int) Currency {
	switch t {
	case CurrencyGold:
		c.Gold = v
	case CurrencyGems:
		c.Gems = v
	}
	return c
}

// Inventory is the bag, the worn equipment and the purse.
// Capacity is advisory and never enforced.
type Inventory struct {
	Items     []InventorySlot `json:"items"`
	Equipment Equipment       `json:"equipment"`
	Currency  Currency        `json:"currency"`
	Capacity  int             `json:"capacity"`
}

// Count returns the total quantity of itemID across all slots.
func (inv Inventory) Count(itemID string) int {
	n := 0
	for _, s := range inv.Items {
		if s.Item.ID == itemID {
			n += s.Quantity
		}
	}
	return n
}
