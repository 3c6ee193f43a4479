package utils

import (
	"errors"
	"log"
	"time"

	"ftb/src/config"
	"ftb/src/db"
	"ftb/src/lib/mailer"
	"ftb/src/models"
	"ftb/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bookingTransitions is the full transition table. Statuses missing from the
// map are terminal.
var bookingTransitions = map[types.BookingStatus][]types.BookingStatus{
	types.BOOKING_PENDING_OWNER_APPROVAL: {
		types.BOOKING_CONFIRMED,
		types.BOOKING_REJECTED_BY_OWNER,
	},
	types.BOOKING_CONFIRMED: {
		types.BOOKING_CANCELLED_BY_ORGANIZER,
		types.BOOKING_CANCELLED_BY_OWNER,
	},
}

func CanTransition(from, to types.BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ParseEventDate(s string) (time.Time, error) {
	d, err := time.Parse(config.DATE_PARSE_FORMAT, s)
	if err != nil {
		return time.Time{}, types.NewValidationError("invalid date %q, expected format %s", s, config.DATE_PARSE_FORMAT)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ValidateEventWindow accepts single-day events: end equal to start is fine.
func ValidateEventWindow(start, end time.Time) error {
	if end.Before(start) {
		return types.NewValidationError("event end date must not be before start date")
	}
	return nil
}

// AuthorizeBookingTransition checks that the actor is the participant whose
// role the target status requires. Non-participants and role mismatches are
// both authorization failures; unknown statuses are validation failures.
func AuthorizeBookingTransition(b *models.BookingRequest, ownerId, actorId uint, role types.UserType, to types.BookingStatus) error {
	switch to {
	case types.BOOKING_CONFIRMED, types.BOOKING_REJECTED_BY_OWNER:
		if actorId != ownerId {
			return types.NewAuthorizationError("only the profile owner may set status %s", to)
		}
	case types.BOOKING_CANCELLED_BY_ORGANIZER:
		if actorId != b.OrganizerID || role != types.USER_ORGANIZER {
			return types.NewAuthorizationError("only the booking organizer may cancel as organizer")
		}
	case types.BOOKING_CANCELLED_BY_OWNER:
		if actorId != ownerId || role != types.USER_OWNER {
			return types.NewAuthorizationError("only the profile owner may cancel as owner")
		}
	case types.BOOKING_PENDING_OWNER_APPROVAL:
		return types.NewStateError("cannot transition a booking back to %s", to)
	default:
		return types.NewValidationError("unknown booking status %q", to)
	}
	return nil
}

// CreateBooking inserts a new request in pending_owner_approval. No
// availability re-check happens here: overlapping pending requests on the same
// profile are allowed and the owner's confirm is authoritative.
func CreateBooking(body *types.CreateBookingRequestBody, organizerId uint) (*models.BookingRequest, error) {
	start, err := ParseEventDate(body.EventStartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseEventDate(body.EventEndDate)
	if err != nil {
		return nil, err
	}
	if err := ValidateEventWindow(start, end); err != nil {
		return nil, err
	}

	booking := models.BookingRequest{
		ProfileID:             body.ProfileID,
		OrganizerID:           organizerId,
		EventStartDate:        start,
		EventEndDate:          end,
		EventTime:             body.EventTime,
		EventType:             body.EventType,
		GuestCount:            body.GuestCount,
		EventDescription:      body.EventDescription,
		EventLocation:         body.EventLocation,
		EstimatedUtilityCosts: body.EstimatedUtilityCosts,
		Status:                types.BOOKING_PENDING_OWNER_APPROVAL,
	}

	var ownerEmail string
	d := db.GetDb()
	err = d.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where(&models.Profile{ID: body.ProfileID}).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("profile [%d] does not exist", body.ProfileID)
			}
			return err
		}
		var organizer models.User
		if err := tx.Select("id", "phone_number").Where(&models.User{ID: organizerId}).First(&organizer).Error; err != nil {
			return err
		}
		booking.OrganizerPhone = organizer.PhoneNumber
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		var owner models.User
		if err := tx.Select("id", "email").Where(&models.User{ID: profile.OwnerID}).First(&owner).Error; err != nil {
			return err
		}
		ownerEmail = owner.Email
		return nil
	})
	if err != nil {
		return nil, err
	}

	if ownerEmail != "" {
		go mailer.Notify(ownerEmail, mailer.NOTIFY_NEW_REQUEST, nil)
	}
	return &booking, nil
}

// SetBookingStatus runs a guarded status transition. The booking row is locked
// for the duration of the transaction so concurrent transitions serialize; the
// loser fails the state check. Invoice issuance on confirmation is a
// best-effort side effect: its failure leaves the booking confirmed and
// uninvoiced for the sweep to retry.
func SetBookingStatus(requestId, actorId uint, role types.UserType, newStatus types.BookingStatus) (*models.BookingRequest, error) {
	d := db.GetDb()
	var booking models.BookingRequest
	var profile models.Profile
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.BookingRequest{ID: requestId}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("booking request [%d] does not exist", requestId)
			}
			return err
		}
		if err := tx.Where(&models.Profile{ID: booking.ProfileID}).First(&profile).Error; err != nil {
			return err
		}
		if err := AuthorizeBookingTransition(&booking, profile.OwnerID, actorId, role, newStatus); err != nil {
			return err
		}
		if !CanTransition(booking.Status, newStatus) {
			return types.NewStateError("cannot transition booking [%d] from %s to %s", requestId, booking.Status, newStatus)
		}
		if err := tx.
			Model(&models.BookingRequest{}).
			Where("id = ?", booking.ID).
			Update("status", newStatus).
			Error; err != nil {
			return err
		}
		booking.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStatus == types.BOOKING_CONFIRMED {
		if _, err := IssueInvoice(booking.ID); err != nil {
			log.Printf("Could not issue commission invoice for booking [%d]: %s\n", booking.ID, err.Error())
		} else {
			booking.InvoiceGenerated = true
		}
		go notifyBookingConfirmed(booking.ID, booking.OrganizerID, profile.FoodTruckName, profile.OwnerID)
	}
	return &booking, nil
}

func notifyBookingConfirmed(bookingId, organizerId uint, foodTruckName string, ownerId uint) {
	d := db.GetDb()
	var organizer models.User
	if err := d.Select("id", "email").Where(&models.User{ID: organizerId}).First(&organizer).Error; err != nil {
		log.Printf("Could not load organizer for booking [%d]: %s\n", bookingId, err.Error())
		return
	}
	var owner models.User
	ownerPhone := ""
	if err := d.Select("id", "phone_number").Where(&models.User{ID: ownerId}).First(&owner).Error; err != nil {
		log.Printf("Could not load owner for booking [%d]: %s\n", bookingId, err.Error())
	} else if owner.PhoneNumber != nil {
		ownerPhone = *owner.PhoneNumber
	}
	mailer.Notify(organizer.Email, mailer.NOTIFY_BOOKING_CONFIRMED, map[string]string{
		"food_truck_name": foodTruckName,
		"owner_phone":     ownerPhone,
	})
}

// MyBookings lists a user's bookings, newest first. Organizers see bookings
// they placed, owners see requests against their profiles.
func MyBookings(userId uint, userType types.UserType) ([]models.BookingRequest, error) {
	d := db.GetDb()
	var bookings []models.BookingRequest
	q := d.Model(&models.BookingRequest{})
	if userType == types.USER_ORGANIZER {
		q = q.
			Where(&models.BookingRequest{OrganizerID: userId}).
			Preload("Profile")
	} else {
		q = q.
			Joins("JOIN food_truck_profiles ON food_truck_profiles.id = booking_requests.profile_id").
			Where("food_truck_profiles.owner_id = ?", userId).
			Preload("Profile").
			Preload("Organizer")
	}
	if err := q.Order("booking_requests.created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
