// Package pricing computes ticket totals from per-category quantities and a
// screening's unit price.
package pricing

import (
	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

const DefaultMaxTickets = 8

// Rules are the business parameters of a booking. They are configuration,
// not constants, so that a product change does not need a code change.
type Rules struct {
	MaxTickets int
	Discounts  map[domain.TicketCategory]decimal.Decimal
}

func DefaultRules() Rules {
	return Rules{
		MaxTickets: DefaultMaxTickets,
		Discounts: map[domain.TicketCategory]decimal.Decimal{
			domain.TicketAdult: decimal.Zero,
			domain.TicketTeen:  decimal.NewFromInt(2000),
			domain.TicketChild: decimal.NewFromInt(6000),
		},
	}
}

// UnitPrice returns the price of one ticket of the category, never below zero.
func (r Rules) UnitPrice(category domain.TicketCategory, unitPrice decimal.Decimal) decimal.Decimal {
	price := unitPrice.Sub(r.Discounts[category])
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// Total is the sum over categories of count * max(0, unitPrice - discount).
// It is always computed from scratch.
func (r Rules) Total(counts domain.TicketTypeCounts, unitPrice decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	for category, count := range counts {
		if count <= 0 {
			continue
		}
		total = total.Add(r.UnitPrice(category, unitPrice).Mul(decimal.NewFromInt(int64(count))))
	}

	return total
}

// Breakdown returns one line per category with a positive count, in display
// order.
func (r Rules) Breakdown(counts domain.TicketTypeCounts, unitPrice decimal.Decimal) []Line {
	var lines []Line

	for _, category := range domain.TicketCategories {
		count := counts[category]
		if count <= 0 {
			continue
		}

		price := r.UnitPrice(category, unitPrice)
		lines = append(lines, Line{
			Category:  category,
			Count:     count,
			UnitPrice: price,
			Subtotal:  price.Mul(decimal.NewFromInt(int64(count))),
		})
	}

	return lines
}

type Line struct {
	Category  domain.TicketCategory `json:"category"`
	Count     int                   `json:"count"`
	UnitPrice decimal.Decimal       `json:"unitPrice"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
}
