package utils

import (
	"testing"
	"time"

	"ftb/src/models"
	"ftb/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allStatuses := []types.BookingStatus{
		types.BOOKING_PENDING_OWNER_APPROVAL,
		types.BOOKING_CONFIRMED,
		types.BOOKING_REJECTED_BY_OWNER,
		types.BOOKING_CANCELLED_BY_ORGANIZER,
		types.BOOKING_CANCELLED_BY_OWNER,
	}
	allowed := map[types.BookingStatus][]types.BookingStatus{
		types.BOOKING_PENDING_OWNER_APPROVAL: {
			types.BOOKING_CONFIRMED,
			types.BOOKING_REJECTED_BY_OWNER,
		},
		types.BOOKING_CONFIRMED: {
			types.BOOKING_CANCELLED_BY_ORGANIZER,
			types.BOOKING_CANCELLED_BY_OWNER,
		},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestRejectedIsTerminal(t *testing.T) {
	for _, to := range []types.BookingStatus{
		types.BOOKING_PENDING_OWNER_APPROVAL,
		types.BOOKING_CONFIRMED,
		types.BOOKING_CANCELLED_BY_ORGANIZER,
		types.BOOKING_CANCELLED_BY_OWNER,
	} {
		assert.False(t, CanTransition(types.BOOKING_REJECTED_BY_OWNER, to))
	}
}

func TestParseEventDate(t *testing.T) {
	d, err := ParseEventDate("2026-09-15")
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseEventDate("15-09-2026")
	assert.NotNil(t, err)
	var vErr *types.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestValidateEventWindow(t *testing.T) {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, ValidateEventWindow(day, day.AddDate(0, 0, 2)))
	assert.Nil(t, ValidateEventWindow(day, day), "single-day events are valid")

	err := ValidateEventWindow(day, day.AddDate(0, 0, -1))
	var vErr *types.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAuthorizeBookingTransition(t *testing.T) {
	const (
		ownerId     uint = 10
		organizerId uint = 20
		strangerId  uint = 30
	)
	booking := &models.BookingRequest{ID: 1, OrganizerID: organizerId}

	t.Run("owner confirms and rejects", func(t *testing.T) {
		assert.Nil(t, AuthorizeBookingTransition(booking, ownerId, ownerId, types.USER_OWNER, types.BOOKING_CONFIRMED))
		assert.Nil(t, AuthorizeBookingTransition(booking, ownerId, ownerId, types.USER_OWNER, types.BOOKING_REJECTED_BY_OWNER))
	})

	t.Run("organizer cannot confirm", func(t *testing.T) {
		err := AuthorizeBookingTransition(booking, ownerId, organizerId, types.USER_ORGANIZER, types.BOOKING_CONFIRMED)
		var aErr *types.AuthorizationError
		assert.ErrorAs(t, err, &aErr)
	})

	t.Run("non-participant cannot touch the booking", func(t *testing.T) {
		var aErr *types.AuthorizationError
		err := AuthorizeBookingTransition(booking, ownerId, strangerId, types.USER_ORGANIZER, types.BOOKING_CANCELLED_BY_ORGANIZER)
		assert.ErrorAs(t, err, &aErr)
		err = AuthorizeBookingTransition(booking, ownerId, strangerId, types.USER_OWNER, types.BOOKING_CANCELLED_BY_OWNER)
		assert.ErrorAs(t, err, &aErr)
	})

	t.Run("cancellation is role-matched", func(t *testing.T) {
		assert.Nil(t, AuthorizeBookingTransition(booking, ownerId, organizerId, types.USER_ORGANIZER, types.BOOKING_CANCELLED_BY_ORGANIZER))
		assert.Nil(t, AuthorizeBookingTransition(booking, ownerId, ownerId, types.USER_OWNER, types.BOOKING_CANCELLED_BY_OWNER))

		var aErr *types.AuthorizationError
		err := AuthorizeBookingTransition(booking, ownerId, ownerId, types.USER_OWNER, types.BOOKING_CANCELLED_BY_ORGANIZER)
		assert.ErrorAs(t, err, &aErr, "owner may not cancel as organizer")
	})

	t.Run("pending is never a target", func(t *testing.T) {
		err := AuthorizeBookingTransition(booking, ownerId, ownerId, types.USER_OWNER, types.BOOKING_PENDING_OWNER_APPROVAL)
		var sErr *types.StateError
		assert.ErrorAs(t, err, &sErr)
	})

	t.Run("unknown status", func(t *testing.T) {
		err := AuthorizeBookingTransition(booking, ownerId, ownerId, types.USER_OWNER, types.BookingStatus("archived"))
		var vErr *types.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func profileRows() *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"id", "owner_id", "food_truck_name"}).
		AddRow(2, 10, "Best Burgers")
}

func TestSetBookingStatusOwnerRejects(t *testing.T) {
	_, mock := newMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "booking_requests"(.+)FOR UPDATE`).
		WillReturnRows(bookingRows(types.BOOKING_PENDING_OWNER_APPROVAL, false))
	mock.ExpectQuery(`SELECT (.+) FROM "food_truck_profiles"`).
		WillReturnRows(profileRows())
	mock.ExpectExec(`UPDATE "booking_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := SetBookingStatus(1, 10, types.USER_OWNER, types.BOOKING_REJECTED_BY_OWNER)
	assert.Nil(t, err)
	assert.Equal(t, types.BOOKING_REJECTED_BY_OWNER, booking.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSetBookingStatusSecondConfirmLoses(t *testing.T) {
	_, mock := newMockDB()

	// the row is already confirmed by the time the lock is granted
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "booking_requests"(.+)FOR UPDATE`).
		WillReturnRows(bookingRows(types.BOOKING_CONFIRMED, false))
	mock.ExpectQuery(`SELECT (.+) FROM "food_truck_profiles"`).
		WillReturnRows(profileRows())
	mock.ExpectRollback()

	_, err := SetBookingStatus(1, 10, types.USER_OWNER, types.BOOKING_CONFIRMED)
	var sErr *types.StateError
	assert.ErrorAs(t, err, &sErr)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSetBookingStatusConfirmIssuesInvoice(t *testing.T) {
	srv := newStripeStub()
	defer srv.Close()
	_, mock := newMockDB()

	// status transition commits on its own
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "booking_requests"(.+)FOR UPDATE`).
		WillReturnRows(bookingRows(types.BOOKING_PENDING_OWNER_APPROVAL, false))
	mock.ExpectQuery(`SELECT (.+) FROM "food_truck_profiles"`).
		WillReturnRows(profileRows())
	mock.ExpectExec(`UPDATE "booking_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// invoice issuance runs in its own transaction against the committed row
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "booking_requests"(.+)FOR UPDATE`).
		WillReturnRows(bookingRows(types.BOOKING_CONFIRMED, false))
	mock.ExpectQuery(`SELECT (.+) FROM "food_truck_profiles"`).
		WillReturnRows(profileRows())
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "email", "stripe_customer_id", "country_code"}).
			AddRow(10, "owner@example.com", "cus_test", "PL"))
	mock.ExpectQuery(`SELECT (.+) FROM "tax_rates"`).
		WillReturnRows(sqlmock.
			NewRows([]string{"country_code", "vat_rate"}).
			AddRow("PL", 23.0))
	mock.ExpectQuery(`INSERT INTO "invoices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "booking_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := SetBookingStatus(1, 10, types.USER_OWNER, types.BOOKING_CONFIRMED)
	assert.Nil(t, err)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	assert.True(t, booking.InvoiceGenerated, "response reflects the issued invoice")
	assert.Nil(t, mock.ExpectationsWereMet())
}
