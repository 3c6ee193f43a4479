package models

import (
	"time"

	"ftb/src/types"
)

// Invoice records one commission charge tied to a confirmed booking. The
// unique index on booking_request_id backs the at-most-one-invoice invariant.
type Invoice struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	BookingRequestID uint      `gorm:"uniqueIndex" json:"booking_request_id,omitempty"`
	OwnerID          uint      `json:"owner_id,omitempty"`
	AmountNet        float64   `json:"amount_net,omitempty"`
	VatRate          float64   `json:"vat_rate,omitempty"`
	AmountGross      float64   `json:"amount_gross,omitempty"`
	Currency         string    `json:"currency,omitempty"`
	StripeInvoiceID  string    `json:"stripe_invoice_id,omitempty"`
	DueDate          time.Time `json:"due_date,omitempty"`

	Booking *BookingRequest `gorm:"foreignKey:booking_request_id" json:"-"`
	Owner   *User           `gorm:"foreignKey:owner_id" json:"-"`

	types.Timestamps
}
