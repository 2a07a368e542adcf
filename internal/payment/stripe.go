package payment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// zeroDecimalCurrencies are charged in whole units by Stripe.
var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {}, "krw": {}, "mga": {},
	"pyg": {}, "rwf": {}, "ugx": {}, "vnd": {}, "vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

type StripePaymentProvider struct {
	failureUrl string
	successUrl string
}

func NewStripePaymentProvider(failureUrl, successUrl string) *StripePaymentProvider {
	return &StripePaymentProvider{
		failureUrl: failureUrl,
		successUrl: successUrl,
	}
}

func (s *StripePaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	reservation domain.Reservation,
	amount decimal.Decimal) (*domain.CheckoutSession, error) {

	params := checkoutSessionParams(reservation, amount, s.successUrl, s.failureUrl)
	params.Context = ctx

	checkoutSession, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &domain.CheckoutSession{
		ID:  checkoutSession.ID,
		URL: checkoutSession.URL,
	}, nil
}

func checkoutSessionParams(
	reservation domain.Reservation,
	amount decimal.Decimal,
	successUrl, failureUrl string) *stripe.CheckoutSessionParams {

	currency := strings.ToLower(reservation.Currency)

	lineItem := &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(currency),
			UnitAmount: stripe.Int64(MinorUnits(currency, amount)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(fmt.Sprintf("🎬 %d ticket(s) - Seats %s",
					reservation.TicketTypeCounts.Total(),
					strings.Join(reservation.SeatIDs, ", "))),
				Description: stripe.String(describeTickets(reservation.TicketTypeCounts)),
			},
		},
		Quantity: stripe.Int64(1),
	}

	return &stripe.CheckoutSessionParams{
		LineItems:  []*stripe.CheckoutSessionLineItemParams{lineItem},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successUrl),
		CancelURL:  stripe.String(failureUrl),
		Metadata: map[string]string{
			"reservation_id": reservation.ID,
			"order_id":       reservation.OrderID,
			"screening_id":   fmt.Sprint(reservation.ScreeningID),
		},
		CustomerEmail:     stripe.String(reservation.CustomerEmail),
		ClientReferenceID: stripe.String(reservation.OrderID),
	}
}

// MinorUnits converts amount to the smallest unit Stripe expects for currency.
func MinorUnits(currency string, amount decimal.Decimal) int64 {
	if _, ok := zeroDecimalCurrencies[strings.ToLower(currency)]; ok {
		return amount.Round(0).IntPart()
	}

	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func describeTickets(counts domain.TicketTypeCounts) string {
	parts := make([]string, 0, len(counts))
	for category, n := range counts {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s × %d", category, n))
		}
	}
	sort.Strings(parts)

	return strings.Join(parts, " • ")
}
