// Package calculator computes how much each participant owes on a bill.
//
// Every amount goes through money.Money; shares always add up exactly to
// GrandTotal. Whenever a remainder cannot be divided evenly it goes, in full,
// to the first participant in Bill.Participants order.
package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/money"
)

var (
	// ErrNoParticipants is returned when a bill has nobody to split it.
	ErrNoParticipants = errors.New("must have at least one participant")

	// ErrUnassignedItem is returned by AllocateStrict for priced items that
	// nobody is assigned to.
	ErrUnassignedItem = errors.New("item has a price but is not assigned to anyone")
)

// UnassignedItemError identifies the first unassigned priced item.
type UnassignedItemError struct {
	ItemID   string
	ItemName string
}

func (e *UnassignedItemError) Error() string {
	return fmt.Sprintf("item %q (%s): %v", e.ItemName, e.ItemID, ErrUnassignedItem)
}

func (e *UnassignedItemError) Unwrap() error { return ErrUnassignedItem }

// Mode is the strategy used for an allocation.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeEven     Mode = "even"
	ModeItemized Mode = "itemized"
)

// Share is one participant's portion of the bill.
type Share struct {
	ParticipantID string
	Name          string

	// Items and Extras break Amount down into item cost and tax+tip. They
	// are left at zero for even splits, where the grand total is divided as
	// a whole.
	Items  money.Money
	Extras money.Money

	// Amount is what the participant pays.
	Amount money.Money
}

// Allocation is the result of splitting a bill. Shares are in the same order
// as the bill's participants.
type Allocation struct {
	Mode       Mode
	GrandTotal money.Money
	Shares     []Share
}

// Amounts returns the amount owed per participant, in participant order.
func (a *Allocation) Amounts() []money.Money {
	out := make([]money.Money, len(a.Shares))
	for i, s := range a.Shares {
		out[i] = s.Amount
	}
	return out
}

// ItemsTotal sums the item prices. Negative prices count as zero.
func ItemsTotal(bill models.Bill) money.Money {
	total := money.Zero
	for _, item := range bill.Items {
		total = total.Add(item.TotalPrice.NonNegative())
	}
	return total
}

// ExtrasTotal returns tax + tip. Negative values count as zero.
func ExtrasTotal(bill models.Bill) money.Money {
	return bill.Tax.NonNegative().Add(bill.Tip.NonNegative())
}

// GrandTotal is the authoritative amount the shares must add up to.
func GrandTotal(bill models.Bill) money.Money {
	return ItemsTotal(bill).Add(ExtrasTotal(bill))
}

// Allocate splits the bill among its participants.
//
// One participant pays the grand total. With SplitEvenly the grand total is
// divided equally. Otherwise each participant pays for the items assigned to
// them, plus an equal part of tax and tip. Assignments to unknown
// participants and priced items without assignments are not lost: their cost
// lands on the first participant.
func Allocate(bill models.Bill) (*Allocation, error) {
	n := len(bill.Participants)
	if n == 0 {
		return nil, ErrNoParticipants
	}

	alloc := &Allocation{
		GrandTotal: GrandTotal(bill),
		Shares:     make([]Share, n),
	}
	for i, p := range bill.Participants {
		alloc.Shares[i] = Share{ParticipantID: p.ID, Name: p.Name}
	}

	switch {
	case n == 1:
		alloc.Mode = ModeSingle
		alloc.Shares[0].Items = ItemsTotal(bill)
		alloc.Shares[0].Extras = ExtrasTotal(bill)
		alloc.Shares[0].Amount = alloc.GrandTotal

	case bill.SplitEvenly:
		alloc.Mode = ModeEven
		for i, amount := range splitEvenly(alloc.GrandTotal, n) {
			alloc.Shares[i].Amount = amount
		}

	default:
		alloc.Mode = ModeItemized
		items := itemShares(bill)
		extras := splitEvenly(ExtrasTotal(bill), n)
		for i := range alloc.Shares {
			alloc.Shares[i].Items = items[i]
			alloc.Shares[i].Extras = extras[i]
			alloc.Shares[i].Amount = items[i].Add(extras[i])
		}
	}

	return alloc, nil
}

// AllocateStrict is Allocate, but it refuses itemized bills that contain a
// priced item nobody known is assigned to.
func AllocateStrict(bill models.Bill) (*Allocation, error) {
	if len(bill.Participants) > 1 && !bill.SplitEvenly {
		if item, ok := firstUnassignedItem(bill); ok {
			return nil, &UnassignedItemError{ItemID: item.ID, ItemName: item.Name}
		}
	}
	return Allocate(bill)
}

// splitEvenly divides total into n parts truncated to cents; whatever is left
// over goes to index 0.
func splitEvenly(total money.Money, n int) []money.Money {
	base := total.DivInt(int64(n)).Truncate(money.Scale)
	remainder := total.Sub(base.MulInt(int64(n)))

	shares := make([]money.Money, n)
	for i := range shares {
		shares[i] = base
	}
	shares[0] = shares[0].Add(remainder)
	return shares
}

// itemShares computes each participant's item cost, rounded to cents and
// reconciled so the shares add up to ItemsTotal exactly.
func itemShares(bill models.Bill) []money.Money {
	exact := make([]money.Money, len(bill.Participants))
	for _, item := range bill.Items {
		distributeItem(bill, item, exact)
	}

	itemsTotal := ItemsTotal(bill)

	// Anything the exact pass could not place (fractional splits, unknown
	// participants, unassigned items) goes to index 0 before rounding.
	exact[0] = exact[0].Add(itemsTotal.Sub(money.Sum(exact...)))

	rounded := make([]money.Money, len(exact))
	for i, v := range exact {
		rounded[i] = v.Round(money.Scale)
	}

	// Rounding can shift the sum again by a few cents.
	rounded[0] = rounded[0].Add(itemsTotal.Sub(money.Sum(rounded...)))
	return rounded
}

// distributeItem adds the item's cost to each assigned participant at full
// precision.
func distributeItem(bill models.Bill, item models.LineItem, into []money.Money) {
	price := item.TotalPrice.NonNegative()
	if len(item.Assignments) == 0 || !price.IsPositive() {
		return
	}

	if item.Units > 0 {
		// Summed as decimals: quantities come from the caller and may be huge.
		consumed := money.Zero
		for _, a := range item.Assignments {
			if a.Quantity > 0 {
				consumed = consumed.Add(money.FromInt(int64(a.Quantity)))
			}
		}
		if !consumed.IsPositive() {
			return
		}
		for _, a := range item.Assignments {
			i := bill.ParticipantIndex(a.ParticipantID)
			if i < 0 || a.Quantity <= 0 {
				continue
			}
			into[i] = into[i].Add(price.MulInt(int64(a.Quantity)).Div(consumed))
		}
		return
	}

	// Flat charge: equal parts for everyone assigned, quantity ignored.
	each := price.DivInt(int64(len(item.Assignments)))
	for _, a := range item.Assignments {
		if i := bill.ParticipantIndex(a.ParticipantID); i >= 0 {
			into[i] = into[i].Add(each)
		}
	}
}

// firstUnassignedItem finds a priced item whose assignments resolve to no
// known participant with a usable quantity.
func firstUnassignedItem(bill models.Bill) (models.LineItem, bool) {
	for _, item := range bill.Items {
		if !item.TotalPrice.IsPositive() {
			continue
		}
		assigned := false
		for _, a := range item.Assignments {
			if bill.ParticipantIndex(a.ParticipantID) < 0 {
				continue
			}
			if item.Units > 0 && a.Quantity <= 0 {
				continue
			}
			assigned = true
			break
		}
		if !assigned {
			return item, true
		}
	}
	return models.LineItem{}, false
}
