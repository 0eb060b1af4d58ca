package models

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mmynk/tabsplit/internal/money"
)

var (
	ErrItemNotFound         = errors.New("item not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrItemFullyAssigned    = errors.New("all units of this item are already assigned")
	ErrNegativeQuantity     = errors.New("quantity cannot be negative")
	ErrQuantityExceedsUnits = errors.New("quantity exceeds the units available for this item")
)

// AddParticipant appends a participant with a fresh ID.
func (b Bill) AddParticipant(name string) (Bill, Participant) {
	p := Participant{ID: NewID(), Name: name}
	out := b.Clone()
	out.Participants = append(out.Participants, p)
	return out, p
}

// RenameParticipant changes a participant's display name.
func (b Bill) RenameParticipant(id, name string) (Bill, error) {
	i := b.ParticipantIndex(id)
	if i < 0 {
		return b, fmt.Errorf("rename %s: %w", id, ErrParticipantNotFound)
	}
	out := b.Clone()
	out.Participants[i].Name = name
	return out, nil
}

// RemoveParticipant drops a participant together with all of their assignments.
func (b Bill) RemoveParticipant(id string) (Bill, error) {
	i := b.ParticipantIndex(id)
	if i < 0 {
		return b, fmt.Errorf("remove %s: %w", id, ErrParticipantNotFound)
	}
	out := b.Clone()
	out.Participants = slices.Delete(out.Participants, i, i+1)
	for j := range out.Items {
		out.Items[j].Assignments = slices.DeleteFunc(out.Items[j].Assignments, func(a Assignment) bool {
			return a.ParticipantID == id
		})
	}
	return out, nil
}

// AddItem appends an item priced at units × unitPrice.
func (b Bill) AddItem(name string, units int, unitPrice money.Money) (Bill, LineItem) {
	it := LineItem{
		ID:         NewID(),
		Name:       name,
		Units:      units,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.MulInt(int64(units)),
	}
	out := b.Clone()
	out.Items = append(out.Items, it)
	return out, it
}

// AddFlatCharge appends a zero-unit item with a fixed total.
func (b Bill) AddFlatCharge(name string, total money.Money) (Bill, LineItem) {
	it := LineItem{ID: NewID(), Name: name, TotalPrice: total}
	out := b.Clone()
	out.Items = append(out.Items, it)
	return out, it
}

// RemoveItem drops an item.
func (b Bill) RemoveItem(id string) (Bill, error) {
	i := b.ItemIndex(id)
	if i < 0 {
		return b, fmt.Errorf("remove %s: %w", id, ErrItemNotFound)
	}
	out := b.Clone()
	out.Items = slices.Delete(out.Items, i, i+1)
	return out, nil
}

// SetItemUnits changes the unit count and recomputes the item total.
func (b Bill) SetItemUnits(id string, units int) (Bill, error) {
	i := b.ItemIndex(id)
	if i < 0 {
		return b, fmt.Errorf("set units on %s: %w", id, ErrItemNotFound)
	}
	out := b.Clone()
	it := &out.Items[i]
	it.Units = units
	it.TotalPrice = it.UnitPrice.MulInt(int64(units))
	return out, nil
}

// SetItemUnitPrice changes the unit price and recomputes the item total.
func (b Bill) SetItemUnitPrice(id string, unitPrice money.Money) (Bill, error) {
	i := b.ItemIndex(id)
	if i < 0 {
		return b, fmt.Errorf("set unit price on %s: %w", id, ErrItemNotFound)
	}
	out := b.Clone()
	it := &out.Items[i]
	it.UnitPrice = unitPrice
	it.TotalPrice = unitPrice.MulInt(int64(it.Units))
	return out, nil
}

// ToggleSplitEvenly flips the split mode. Switching to an even split clears
// every assignment.
func (b Bill) ToggleSplitEvenly() Bill {
	out := b.Clone()
	if !b.SplitEvenly {
		for i := range out.Items {
			out.Items[i].Assignments = nil
		}
	}
	out.SplitEvenly = !b.SplitEvenly
	return out
}

// ToggleAssignment assigns the item to the participant, or unassigns it if
// already assigned. Any toggle switches the bill to itemized mode. A newly
// added unit-bearing assignment starts at one unit; flat charges start at zero.
func (b Bill) ToggleAssignment(itemID, participantID string) (Bill, error) {
	i := b.ItemIndex(itemID)
	if i < 0 {
		return b, fmt.Errorf("toggle %s: %w", itemID, ErrItemNotFound)
	}
	if b.ParticipantIndex(participantID) < 0 {
		return b, fmt.Errorf("toggle %s: %w", participantID, ErrParticipantNotFound)
	}

	item := b.Items[i]
	existing := slices.IndexFunc(item.Assignments, func(a Assignment) bool {
		return a.ParticipantID == participantID
	})

	out := b.Clone()
	out.SplitEvenly = false
	target := &out.Items[i]

	if existing >= 0 {
		target.Assignments = slices.Delete(target.Assignments, existing, existing+1)
		return out, nil
	}

	if item.Units > 0 && item.AssignedUnits() >= item.Units {
		return b, fmt.Errorf("toggle %s: %w", itemID, ErrItemFullyAssigned)
	}

	quantity := 0
	if item.Units > 0 {
		quantity = 1
	}
	target.Assignments = append(target.Assignments, Assignment{ParticipantID: participantID, Quantity: quantity})
	return out, nil
}

// SetAssignmentQuantity changes how many units a participant consumed.
// Setting zero removes the assignment. Participants without an assignment
// are left untouched, and so are flat charges, which carry no quantity.
func (b Bill) SetAssignmentQuantity(itemID, participantID string, quantity int) (Bill, error) {
	i := b.ItemIndex(itemID)
	if i < 0 {
		return b, fmt.Errorf("set quantity on %s: %w", itemID, ErrItemNotFound)
	}
	if quantity < 0 {
		return b, fmt.Errorf("set quantity on %s: %w", itemID, ErrNegativeQuantity)
	}

	item := b.Items[i]
	if item.IsFlatCharge() {
		return b, nil
	}
	// Count down from the units left so huge quantities cannot wrap around.
	remaining := item.Units - quantity
	for _, a := range item.Assignments {
		if remaining < 0 {
			break
		}
		if a.ParticipantID == participantID || a.Quantity <= 0 {
			continue
		}
		if a.Quantity > remaining {
			remaining = -1
			break
		}
		remaining -= a.Quantity
	}
	if remaining < 0 {
		return b, fmt.Errorf("set quantity on %s: %w: %d units available", itemID, ErrQuantityExceedsUnits, item.Units)
	}

	out := b.Clone()
	target := &out.Items[i]
	for j := range target.Assignments {
		if target.Assignments[j].ParticipantID == participantID {
			target.Assignments[j].Quantity = quantity
		}
	}
	target.Assignments = slices.DeleteFunc(target.Assignments, func(a Assignment) bool {
		return a.ParticipantID == participantID && a.Quantity <= 0
	})
	return out, nil
}
