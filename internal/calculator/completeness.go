package calculator

import (
	"fmt"
	"strings"

	"github.com/mmynk/tabsplit/internal/models"
)

// IssueKind classifies why a bill is not ready to be split.
type IssueKind string

const (
	IssueNoItems             IssueKind = "no_items"
	IssueUnnamedItem         IssueKind = "unnamed_item"
	IssueNoUnits             IssueKind = "no_units"
	IssueNegativePrice       IssueKind = "negative_price"
	IssueZeroTotal           IssueKind = "zero_total"
	IssueNoParticipants      IssueKind = "no_participants"
	IssueUnnamedParticipant  IssueKind = "unnamed_participant"
	IssueUnassignedItem      IssueKind = "unassigned_item"
	IssueQuantityMismatch    IssueKind = "quantity_mismatch"
	IssueNonPositiveQuantity IssueKind = "non_positive_quantity"
	IssueUnknownParticipant  IssueKind = "unknown_participant"
)

// Issue is one reason a bill cannot move on yet.
type Issue struct {
	Kind          IssueKind
	ItemID        string
	ParticipantID string
	Message       string
}

func (i Issue) String() string { return i.Message }

// CheckItems reports problems with the receipt lines: there must be at least
// one item, every item needs a name, at least one unit (or a positive flat
// price) and a non-negative unit price, and the bill cannot total zero.
func CheckItems(bill models.Bill) []Issue {
	var issues []Issue
	if len(bill.Items) == 0 {
		issues = append(issues, Issue{Kind: IssueNoItems, Message: "add at least one item"})
	}
	for i, item := range bill.Items {
		label := itemLabel(i, item)
		if strings.TrimSpace(item.Name) == "" {
			issues = append(issues, Issue{Kind: IssueUnnamedItem, ItemID: item.ID,
				Message: fmt.Sprintf("%s has no name", label)})
		}
		if item.Units < 0 || (item.Units == 0 && !item.TotalPrice.IsPositive()) {
			issues = append(issues, Issue{Kind: IssueNoUnits, ItemID: item.ID,
				Message: fmt.Sprintf("%s must have at least one unit or a flat price", label)})
		}
		if item.UnitPrice.IsNegative() {
			issues = append(issues, Issue{Kind: IssueNegativePrice, ItemID: item.ID,
				Message: fmt.Sprintf("%s has a negative unit price", label)})
		}
	}
	if GrandTotal(bill).IsZero() {
		issues = append(issues, Issue{Kind: IssueZeroTotal, Message: "bill total is zero"})
	}
	return issues
}

// CheckSplit reports what keeps the bill from being split: everyone needs a
// name and, unless the bill is split evenly, every priced item must be fully
// assigned.
func CheckSplit(bill models.Bill) []Issue {
	var issues []Issue
	if len(bill.Participants) == 0 {
		issues = append(issues, Issue{Kind: IssueNoParticipants, Message: "add at least one participant"})
	}
	for i, p := range bill.Participants {
		if strings.TrimSpace(p.Name) == "" {
			issues = append(issues, Issue{Kind: IssueUnnamedParticipant, ParticipantID: p.ID,
				Message: fmt.Sprintf("participant %d has no name", i+1)})
		}
	}
	if bill.SplitEvenly {
		return issues
	}

	for i, item := range bill.Items {
		label := itemLabel(i, item)
		priced := item.TotalPrice.IsPositive()

		for _, a := range item.Assignments {
			if bill.ParticipantIndex(a.ParticipantID) < 0 {
				issues = append(issues, Issue{Kind: IssueUnknownParticipant, ItemID: item.ID, ParticipantID: a.ParticipantID,
					Message: fmt.Sprintf("%s is assigned to an unknown participant", label)})
			}
		}

		if item.Units <= 0 {
			if priced && len(item.Assignments) == 0 {
				issues = append(issues, Issue{Kind: IssueUnassignedItem, ItemID: item.ID,
					Message: fmt.Sprintf("%s is not assigned to anyone", label)})
			}
			continue
		}

		if len(item.Assignments) == 0 && priced {
			issues = append(issues, Issue{Kind: IssueUnassignedItem, ItemID: item.ID,
				Message: fmt.Sprintf("%s is not assigned to anyone", label)})
			continue
		}
		if assigned := item.AssignedUnits(); assigned != item.Units {
			issues = append(issues, Issue{Kind: IssueQuantityMismatch, ItemID: item.ID,
				Message: fmt.Sprintf("%s has %d of %d units assigned", label, assigned, item.Units)})
		}
		for _, a := range item.Assignments {
			if a.Quantity <= 0 {
				issues = append(issues, Issue{Kind: IssueNonPositiveQuantity, ItemID: item.ID, ParticipantID: a.ParticipantID,
					Message: fmt.Sprintf("%s has an assignment without units", label)})
			}
		}
	}
	return issues
}

// Ready reports whether the bill passes both checks.
func Ready(bill models.Bill) bool {
	return len(CheckItems(bill)) == 0 && len(CheckSplit(bill)) == 0
}

func itemLabel(i int, item models.LineItem) string {
	if name := strings.TrimSpace(item.Name); name != "" {
		return fmt.Sprintf("item %q", name)
	}
	return fmt.Sprintf("item %d", i+1)
}
