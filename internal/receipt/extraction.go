// Package receipt turns receipt extraction results into draft bills.
//
// Extraction is best effort: any field may be missing, null or nonsensical.
// Normalisation makes the result safe for the calculator without trusting it.
package receipt

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/money"
)

// maxUnits caps absurd unit counts read from a receipt.
var maxUnits = decimal.NewFromInt(math.MaxInt32)

// dateLayout accepts both "2024-05-03" and "2024-5-3".
const dateLayout = "2006-1-2"

// Extraction is the payload returned by the receipt extractor.
type Extraction struct {
	BusinessName *string         `json:"businessName"`
	Date         *string         `json:"date"`
	BillItems    []ExtractedItem `json:"billItems"`
	Tax          *money.Money    `json:"tax"`
	Tip          *money.Money    `json:"tip"`
}

// ExtractedItem is one receipt line as read by the extractor.
type ExtractedItem struct {
	Name      string           `json:"name"`
	Units     *decimal.Decimal `json:"units"`
	UnitPrice *money.Money     `json:"unitPrice"`
	Price     *money.Money     `json:"price"`
}

// Bill converts the extraction into a draft bill without participants.
func (e Extraction) Bill() models.Bill {
	bill := models.Bill{
		Tax: orZero(e.Tax),
		Tip: orZero(e.Tip),
	}
	if e.BusinessName != nil {
		bill.BusinessName = strings.TrimSpace(*e.BusinessName)
	}
	if e.Date != nil {
		if d, err := time.Parse(dateLayout, strings.TrimSpace(*e.Date)); err == nil {
			bill.Date = d
		}
	}
	for _, it := range e.BillItems {
		bill.Items = append(bill.Items, it.lineItem())
	}
	return bill
}

func (it ExtractedItem) lineItem() models.LineItem {
	units := 0
	if it.Units != nil && it.Units.IsPositive() {
		units = int(decimal.Min(it.Units.Round(0), maxUnits).IntPart())
	}

	unitPrice := orZero(it.UnitPrice)
	price := orZero(it.Price)
	switch {
	case it.Price == nil && it.UnitPrice != nil:
		price = unitPrice.MulInt(int64(units)).NonNegative()
	case it.UnitPrice == nil && it.Price != nil && units > 0:
		unitPrice = price.DivInt(int64(units))
	}

	return models.LineItem{
		ID:         models.NewID(),
		Name:       strings.TrimSpace(it.Name),
		Units:      units,
		UnitPrice:  unitPrice,
		TotalPrice: price,
	}
}

func orZero(m *money.Money) money.Money {
	if m == nil {
		return money.Zero
	}
	return m.NonNegative()
}
