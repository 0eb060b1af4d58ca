package models

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tabsplit/internal/money"
)

// Bill is the snapshot handed to the split calculator.
type Bill struct {
	// BusinessName and Date come from receipt extraction when available.
	// They are informational and never affect the split.
	BusinessName string
	Date         time.Time

	// Items are the receipt lines, in display order.
	Items []LineItem

	// Participants are the people splitting the bill. Order matters: the
	// first participant absorbs every rounding remainder.
	Participants []Participant

	// Tax and Tip are shared extra charges, split evenly in every mode.
	Tax money.Money
	Tip money.Money

	// SplitEvenly divides the grand total equally and ignores assignments.
	SplitEvenly bool
}

// Participant is one person splitting the bill.
type Participant struct {
	ID   string
	Name string
}

// LineItem is a single line on the receipt.
type LineItem struct {
	ID   string
	Name string

	// Units is the number of units on the line. Zero marks a flat charge
	// (e.g. a cover charge) that is shared equally by whoever is assigned.
	Units int

	// UnitPrice is the price of one unit.
	UnitPrice money.Money

	// TotalPrice is normally Units × UnitPrice; flat charges set it directly.
	TotalPrice money.Money

	// Assignments record who consumed the item.
	Assignments []Assignment
}

// Assignment records that a participant consumed Quantity units of an item.
// Quantity is ignored for flat charges.
type Assignment struct {
	ParticipantID string
	Quantity      int
}

// NewID returns a fresh identifier for a participant or item.
func NewID() string {
	return uuid.New().String()
}

// Clone returns a deep copy of the bill.
func (b Bill) Clone() Bill {
	out := b
	out.Participants = slices.Clone(b.Participants)
	out.Items = make([]LineItem, len(b.Items))
	for i, item := range b.Items {
		out.Items[i] = item.Clone()
	}
	if b.Items == nil {
		out.Items = nil
	}
	return out
}

// Clone returns a deep copy of the item.
func (it LineItem) Clone() LineItem {
	out := it
	out.Assignments = slices.Clone(it.Assignments)
	return out
}

// AssignedUnits returns the sum of the positive assigned quantities,
// saturating at math.MaxInt.
func (it LineItem) AssignedUnits() int {
	total := 0
	for _, a := range it.Assignments {
		if a.Quantity <= 0 {
			continue
		}
		if a.Quantity > math.MaxInt-total {
			return math.MaxInt
		}
		total += a.Quantity
	}
	return total
}

// IsFlatCharge reports whether the item has no unit count.
func (it LineItem) IsFlatCharge() bool {
	return it.Units <= 0
}

// ParticipantIndex returns the position of the participant with the given ID,
// or -1.
func (b Bill) ParticipantIndex(id string) int {
	for i, p := range b.Participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// ItemIndex returns the position of the item with the given ID, or -1.
func (b Bill) ItemIndex(id string) int {
	for i, it := range b.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
