// Package summary renders a split as plain text that can be pasted into a chat.
package summary

import (
	"fmt"
	"strings"

	"github.com/mmynk/tabsplit/internal/calculator"
)

// Options control the wording of the summary.
type Options struct {
	Currency   string
	Heading    string
	TotalLabel string
}

// DefaultOptions returns English wording with the given currency symbol.
func DefaultOptions(currency string) Options {
	return Options{
		Currency:   currency,
		Heading:    "Bill split summary:",
		TotalLabel: "Bill total",
	}
}

// Render produces one line per participant followed by the bill total:
//
//	Bill split summary:
//	- Alice: R$ 10.00
//	- Bob: R$ 5.00
//
//	Bill total: R$ 15.00
func Render(alloc *calculator.Allocation, opts Options) string {
	var b strings.Builder
	b.WriteString(opts.Heading)
	b.WriteByte('\n')
	for i, s := range alloc.Shares {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			name = fmt.Sprintf("Person %d", i+1)
		}
		fmt.Fprintf(&b, "- %s: %s\n", name, s.Amount.Format(opts.Currency))
	}
	fmt.Fprintf(&b, "\n%s: %s", opts.TotalLabel, alloc.GrandTotal.Format(opts.Currency))
	return b.String()
}
