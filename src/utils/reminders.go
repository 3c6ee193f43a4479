package utils

import (
	"errors"
	"log"
	"time"

	"ftb/src/db"
	"ftb/src/lib/mailer"
	"ftb/src/models"
	"ftb/src/types"

	"gorm.io/gorm"
)

func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PackagingReminderDue reports whether the event start is exactly 14 or 7
// days out, date-only.
func PackagingReminderDue(eventStart, now time.Time) bool {
	days := int(DateOnly(eventStart).Sub(DateOnly(now)).Hours() / 24)
	return days == 14 || days == 7
}

// SendPackagingReminders mails owners of confirmed bookings starting in 14 or
// 7 days. The reminder_sent_at stamp keeps each mark to a single mail no
// matter how often the sweep runs.
func SendPackagingReminders(now time.Time) (int, error) {
	today := DateOnly(now)
	in14 := today.AddDate(0, 0, 14)
	in7 := today.AddDate(0, 0, 7)

	d := db.GetDb()
	var bookings []models.BookingRequest
	if err := d.
		Model(&models.BookingRequest{}).
		Where("status = ?", types.BOOKING_CONFIRMED).
		Where("event_start_date IN (?, ?)", in14, in7).
		Where("reminder_sent_at IS NULL OR reminder_sent_at < ?", today).
		Preload("Profile").
		Preload("Profile.Owner").
		Find(&bookings).
		Error; err != nil {
		return 0, err
	}
	if len(bookings) == 0 {
		log.Println("[cron] No bookings due a packaging reminder today")
		return 0, nil
	}

	sent := 0
	for _, booking := range bookings {
		if booking.Profile == nil || booking.Profile.Owner == nil {
			log.Printf("[cron] Booking [%d] has no owner contact, skipping\n", booking.ID)
			continue
		}
		mailer.Notify(booking.Profile.Owner.Email, mailer.NOTIFY_PACKAGING, map[string]string{
			"food_truck_name": booking.Profile.FoodTruckName,
		})
		if err := d.Transaction(func(tx *gorm.DB) error {
			return tx.
				Model(&models.BookingRequest{}).
				Where("id = ?", booking.ID).
				Update("reminder_sent_at", now).
				Error
		}); err != nil {
			log.Printf("[cron] Could not stamp reminder for booking [%d]: %s\n", booking.ID, err.Error())
			continue
		}
		sent++
	}
	log.Printf("[cron] Sent %d packaging reminders\n", sent)
	return sent, nil
}

// SweepUnbilledBookings issues commission invoices for confirmed bookings
// whose event ended yesterday and that have none yet. Bookings missing a
// billing prerequisite are logged and skipped, the batch keeps going.
func SweepUnbilledBookings(now time.Time) (int, error) {
	yesterday := DateOnly(now).AddDate(0, 0, -1)

	d := db.GetDb()
	var bookings []models.BookingRequest
	if err := d.
		Model(&models.BookingRequest{}).
		Select("id").
		Where("status = ?", types.BOOKING_CONFIRMED).
		Where("invoice_generated = ?", false).
		Where("event_end_date = ?", yesterday).
		Find(&bookings).
		Error; err != nil {
		return 0, err
	}

	issued := 0
	for _, booking := range bookings {
		if _, err := IssueInvoice(booking.ID); err != nil {
			var depErr *types.DependencyError
			if errors.As(err, &depErr) {
				log.Printf("[cron] Skipping invoice for booking [%d]: %s\n", booking.ID, depErr.Error())
				continue
			}
			log.Printf("[cron] Error issuing invoice for booking [%d]: %s\n", booking.ID, err.Error())
			continue
		}
		issued++
	}
	log.Printf("[cron] Issued %d commission invoices\n", issued)
	return issued, nil
}
