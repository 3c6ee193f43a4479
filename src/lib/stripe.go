package lib

import (
	"context"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// SendCommissionInvoice creates an invoice item and a send_invoice-type
// invoice for the customer, then sends it. Returns the provider invoice id.
func SendCommissionInvoice(ctx context.Context, customerId string, amountMinor int64, currency, description string, daysUntilDue int64) (string, error) {
	sc := GetStripeClient()
	_, err := sc.V1InvoiceItems.Create(ctx, &stripe.InvoiceItemCreateParams{
		Customer:    stripe.String(customerId),
		Amount:      stripe.Int64(amountMinor),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	})
	if err != nil {
		return "", err
	}
	invoice, err := sc.V1Invoices.Create(ctx, &stripe.InvoiceCreateParams{
		Customer:         stripe.String(customerId),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(daysUntilDue),
		AutoAdvance:      stripe.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if _, err := sc.V1Invoices.SendInvoice(ctx, invoice.ID, &stripe.InvoiceSendInvoiceParams{}); err != nil {
		return "", err
	}
	return invoice.ID, nil
}
