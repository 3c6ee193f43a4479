package utils

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"ftb/src/config"
	"ftb/src/db"
	"ftb/src/lib"
	"ftb/src/models"
	"ftb/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToMinorUnits converts a major-unit amount to minor units (grosze), rounding
// half-up per currency convention.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

// CommissionGross applies the VAT rate to the net fee and rounds to the
// nearest grosz, half-up.
func CommissionGross(net, vatRate float64) float64 {
	return float64(ToMinorUnits(net*(1+vatRate/100))) / 100
}

func InvoiceDueDate(now time.Time) time.Time {
	return now.AddDate(0, 0, config.INVOICE_DUE_DAYS)
}

// IssueInvoice creates the commission invoice for a confirmed booking, at most
// once. The booking row is locked while the invoice_generated guard is checked
// and set, and the local invoice row commits only after the provider accepted
// the invoice; any failure rolls the whole operation back.
func IssueInvoice(bookingId uint) (*models.Invoice, error) {
	d := db.GetDb()
	var invoice models.Invoice
	err := d.Transaction(func(tx *gorm.DB) error {
		var booking models.BookingRequest
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.BookingRequest{ID: bookingId}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("booking request [%d] does not exist", bookingId)
			}
			return err
		}
		if booking.Status != types.BOOKING_CONFIRMED {
			return types.NewStateError("booking [%d] is %s, only confirmed bookings are invoiced", bookingId, booking.Status)
		}
		if booking.InvoiceGenerated {
			return types.NewStateError("booking [%d] already has a commission invoice", bookingId)
		}

		var profile models.Profile
		if err := tx.Where(&models.Profile{ID: booking.ProfileID}).First(&profile).Error; err != nil {
			return err
		}
		var owner models.User
		if err := tx.Where(&models.User{ID: profile.OwnerID}).First(&owner).Error; err != nil {
			return err
		}
		if owner.StripeCustomerID == nil || *owner.StripeCustomerID == "" {
			return types.NewDependencyError(fmt.Sprintf("owner [%d] has no billing customer reference", owner.ID), nil)
		}
		var taxRate models.TaxRate
		if err := tx.Where(&models.TaxRate{CountryCode: owner.CountryCode}).First(&taxRate).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewDependencyError(fmt.Sprintf("no VAT rate for country %s", owner.CountryCode), nil)
			}
			return err
		}

		net := config.PlatformCommissionNet()
		gross := CommissionGross(net, taxRate.VatRate)
		description := fmt.Sprintf("Prowizja za rezerwację #%d", booking.ID)
		stripeInvoiceId, err := lib.SendCommissionInvoice(
			context.Background(),
			*owner.StripeCustomerID,
			ToMinorUnits(gross),
			config.INVOICE_CURRENCY,
			description,
			config.INVOICE_DUE_DAYS,
		)
		if err != nil {
			return types.NewDependencyError("stripe invoice", err)
		}

		invoice = models.Invoice{
			BookingRequestID: booking.ID,
			OwnerID:          owner.ID,
			AmountNet:        net,
			VatRate:          taxRate.VatRate,
			AmountGross:      gross,
			Currency:         config.INVOICE_CURRENCY,
			StripeInvoiceID:  stripeInvoiceId,
			DueDate:          InvoiceDueDate(time.Now()),
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.BookingRequest{}).
			Where("id = ?", booking.ID).
			Update("invoice_generated", true).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
