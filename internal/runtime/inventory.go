package runtime

import (
	"slices"

	"github.com/aretw0/grunberg/pkg/domain"
)

// addItem merges into the first slot holding the same id when the item is
// stackable; otherwise it appends a new slot. Capacity is not enforced.
func (tx *transition) addItem(s *domain.GameState, a domain.AddItem) *domain.GameState {
	next := shallow(s)
	items := slices.Clone(s.Inventory.Items)

	idx := -1
	if a.Item.Stackable {
		idx = slices.IndexFunc(items, func(slot domain.InventorySlot) bool { return slot.Item.ID == a.Item.ID })
	}
	if idx >= 0 {
		items[idx].Quantity += a.Quantity
	} else {
		items = append(items, domain.InventorySlot{Item: a.Item, Quantity: a.Quantity})
	}
	next.Inventory.Items = items

	tx.emit(domain.EventItemAdded, domain.ItemQuantityPayload{ItemID: a.Item.ID, Quantity: a.Quantity})
	return next
}

// removeItem decrements every slot holding the id and drops the ones that reach zero.
// The event is emitted even when nothing matched.
func (tx *transition) removeItem(s *domain.GameState, a domain.RemoveItem) *domain.GameState {
	next := shallow(s)
	items := make([]domain.InventorySlot, 0, len(s.Inventory.Items))
	for _, slot := range s.Inventory.Items {
		if slot.Item.ID == a.ItemID {
			slot.Quantity -= a.Quantity
			if slot.Quantity <= 0 {
				continue
			}
		}
		items = append(items, slot)
	}
	next.Inventory.Items = items

	tx.emit(domain.EventItemRemoved, domain.ItemQuantityPayload{ItemID: a.ItemID, Quantity: a.Quantity})
	return next
}

// equipItem overwrites the target slot. The displaced item is discarded and
// the equipped item is not taken out of the bag.
func (tx *transition) equipItem(s *domain.GameState, a domain.EquipItem) *domain.GameState {
	slot, ok := a.Item.EquipSlot()
	if !ok {
		return s
	}
	next := shallow(s)
	item := a.Item
	next.Inventory.Equipment = s.Inventory.Equipment.With(slot, &item)

	tx.emit(domain.EventItemEquipped, domain.ItemSlotPayload{ItemID: item.ID, Slot: slot})
	return next
}

func (tx *transition) unequipItem(s *domain.GameState, a domain.UnequipItem) *domain.GameState {
	current, ok := s.Inventory.Equipment.Get(a.Slot)
	if !ok || current == nil {
		return s
	}
	next := shallow(s)
	next.Inventory.Equipment = s.Inventory.Equipment.With(a.Slot, nil)

	tx.emit(domain.EventItemUnequipped, domain.ItemSlotPayload{ItemID: current.ID, Slot: a.Slot})
	return next
}

// updateCurrency floors the balance at zero. The event reports the requested delta.
func (tx *transition) updateCurrency(s *domain.GameState, a domain.UpdateCurrency) *domain.GameState {
	current, ok := s.Inventory.Currency.Get(a.Currency)
	if !ok {
		return s
	}
	next := shallow(s)
	next.Inventory.Currency = s.Inventory.Currency.With(a.Currency, max(0, current+a.Amount))

	tx.emit(domain.EventCurrencyChanged, domain.CurrencyChangedPayload{Type: a.Currency, Amount: a.Amount})
	return next
}
