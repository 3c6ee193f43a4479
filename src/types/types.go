package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type BookingStatus string

const (
	BOOKING_PENDING_OWNER_APPROVAL BookingStatus = "pending_owner_approval"
	BOOKING_CONFIRMED              BookingStatus = "confirmed"
	BOOKING_REJECTED_BY_OWNER      BookingStatus = "rejected_by_owner"
	BOOKING_CANCELLED_BY_ORGANIZER BookingStatus = "cancelled_by_organizer"
	BOOKING_CANCELLED_BY_OWNER     BookingStatus = "cancelled_by_owner"
)

type UserType string

const (
	USER_ORGANIZER UserType = "organizer"
	USER_OWNER     UserType = "food_truck_owner"
)

type CreateProfileRequestBody struct {
	FoodTruckName           string   `json:"food_truck_name" binding:"required"`
	FoodTruckDescription    string   `json:"food_truck_description,omitempty"`
	BaseLocation            string   `json:"base_location,omitempty"`
	OperationRadiusKm       *float64 `json:"operation_radius_km,omitempty" binding:"omitempty,gt=0"`
	WebsiteURL              *string  `json:"website_url,omitempty"`
	Offer                   JSONB    `json:"offer,omitempty"`
	LongTermRentalAvailable bool     `json:"long_term_rental_available,omitempty"`
}

type CreateBookingRequestBody struct {
	ProfileID             uint     `json:"profile_id" binding:"required"`
	EventStartDate        string   `json:"event_start_date" binding:"required,eventdate"`
	EventEndDate          string   `json:"event_end_date" binding:"required,eventdate,gtedate=EventStartDate"`
	EventTime             *string  `json:"event_time,omitempty"`
	EventType             *string  `json:"event_type,omitempty"`
	GuestCount            *uint    `json:"guest_count,omitempty"`
	EventDescription      *string  `json:"event_description,omitempty"`
	EventLocation         *string  `json:"event_location,omitempty"`
	EstimatedUtilityCosts *float64 `json:"estimated_utility_costs,omitempty"`
}

type UpdateBookingStatusRequestBody struct {
	NewStatus BookingStatus `json:"new_status" binding:"required"`
}

type CreateReviewRequestBody struct {
	ProfileID uint    `json:"profile_id" binding:"required"`
	Rating    uint8   `json:"rating" binding:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty"`
}

type UpdateBookingFlagsRequestBody struct {
	CommissionPaid   *bool `json:"commission_paid,omitempty"`
	PackagingOrdered *bool `json:"packaging_ordered,omitempty"`
}

type ProfileSearchQuery struct {
	Cuisine        string   `form:"cuisine"`
	PostalCode     string   `form:"postal_code"`
	EventStartDate string   `form:"event_start_date" binding:"omitempty,eventdate"`
	EventEndDate   string   `form:"event_end_date" binding:"omitempty,eventdate,gtedate=EventStartDate"`
	MinRating      *float64 `form:"min_rating" binding:"omitempty,gte=0,lte=5"`
	LongTerm       *bool    `form:"long_term"`
}

// ProfileSearchFilters is the parsed form of ProfileSearchQuery consumed by the
// search pipeline. Date fields are date-only.
type ProfileSearchFilters struct {
	Cuisine        string
	PostalCode     string
	EventStartDate *time.Time
	EventEndDate   *time.Time
	MinRating      *float64
	LongTerm       *bool
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type Claims struct {
	Email    string   `json:"email"`
	UserType UserType `json:"user_type"`
	jwt.RegisteredClaims
}
