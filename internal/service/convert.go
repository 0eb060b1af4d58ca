package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/money"
	"github.com/mmynk/tabsplit/pkg/api"
)

const wireDateLayout = "2006-01-02"

var errMissingBill = errors.New("bill is required")

// billFromAPI converts a wire bill into the calculator's model.
func billFromAPI(in *api.Bill) (models.Bill, error) {
	if in == nil {
		return models.Bill{}, errMissingBill
	}

	bill := models.Bill{
		BusinessName: in.BusinessName,
		Tax:          money.New(in.Tax),
		Tip:          money.New(in.Tip),
		SplitEvenly:  in.SplitEvenly,
	}
	if in.Date != "" {
		d, err := time.Parse(wireDateLayout, in.Date)
		if err != nil {
			return models.Bill{}, fmt.Errorf("invalid date %q: %w", in.Date, err)
		}
		bill.Date = d
	}

	bill.Participants = make([]models.Participant, len(in.Participants))
	for i, p := range in.Participants {
		bill.Participants[i] = models.Participant{ID: p.ID, Name: p.Name}
	}

	bill.Items = make([]models.LineItem, len(in.Items))
	for i, item := range in.Items {
		assignments := make([]models.Assignment, len(item.Assignments))
		for j, a := range item.Assignments {
			assignments[j] = models.Assignment{ParticipantID: a.ParticipantID, Quantity: a.Quantity}
		}
		bill.Items[i] = models.LineItem{
			ID:          item.ID,
			Name:        item.Name,
			Units:       item.Units,
			UnitPrice:   money.New(item.UnitPrice),
			TotalPrice:  money.New(item.TotalPrice),
			Assignments: assignments,
		}
	}
	return bill, nil
}

// billToAPI converts a model bill to its wire form.
func billToAPI(bill models.Bill) *api.Bill {
	out := &api.Bill{
		BusinessName: bill.BusinessName,
		Items:        make([]api.LineItem, len(bill.Items)),
		Participants: make([]api.Participant, len(bill.Participants)),
		Tax:          bill.Tax.Decimal(),
		Tip:          bill.Tip.Decimal(),
		SplitEvenly:  bill.SplitEvenly,
	}
	if !bill.Date.IsZero() {
		out.Date = bill.Date.Format(wireDateLayout)
	}
	for i, p := range bill.Participants {
		out.Participants[i] = api.Participant{ID: p.ID, Name: p.Name}
	}
	for i, item := range bill.Items {
		var assignments []api.Assignment
		for _, a := range item.Assignments {
			assignments = append(assignments, api.Assignment{ParticipantID: a.ParticipantID, Quantity: a.Quantity})
		}
		out.Items[i] = api.LineItem{
			ID:          item.ID,
			Name:        item.Name,
			Units:       item.Units,
			UnitPrice:   item.UnitPrice.Decimal(),
			TotalPrice:  item.TotalPrice.Decimal(),
			Assignments: assignments,
		}
	}
	return out
}

func sharesToAPI(alloc *calculator.Allocation) []api.Share {
	shares := make([]api.Share, len(alloc.Shares))
	for i, s := range alloc.Shares {
		shares[i] = api.Share{
			ParticipantID: s.ParticipantID,
			Name:          s.Name,
			Items:         s.Items.Round(money.Scale).Decimal(),
			Extras:        s.Extras.Round(money.Scale).Decimal(),
			Amount:        s.Amount.Decimal(),
		}
	}
	return shares
}

func issuesToAPI(issues []calculator.Issue) []api.Issue {
	out := make([]api.Issue, len(issues))
	for i, issue := range issues {
		out[i] = api.Issue{
			Kind:          string(issue.Kind),
			ItemID:        issue.ItemID,
			ParticipantID: issue.ParticipantID,
			Message:       issue.Message,
		}
	}
	return out
}
