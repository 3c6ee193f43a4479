package models

import (
	"time"

	"ftb/src/types"
)

type BookingRequest struct {
	ID                    uint                `gorm:"primarykey" json:"request_id"`
	ProfileID             uint                `json:"profile_id,omitempty"`
	OrganizerID           uint                `json:"organizer_id,omitempty"`
	EventStartDate        time.Time           `gorm:"type:date" json:"event_start_date"`
	EventEndDate          time.Time           `gorm:"type:date" json:"event_end_date"`
	EventTime             *string             `json:"event_time,omitempty"`
	EventType             *string             `json:"event_type,omitempty"`
	GuestCount            *uint               `json:"guest_count,omitempty"`
	EventDescription      *string             `json:"event_description,omitempty"`
	EventLocation         *string             `json:"event_location,omitempty"`
	EstimatedUtilityCosts *float64            `json:"estimated_utility_costs,omitempty"`
	OrganizerPhone        *string             `json:"organizer_phone,omitempty"`
	Status                types.BookingStatus `gorm:"default:'pending_owner_approval'" json:"status,omitempty"`
	InvoiceGenerated      bool                `json:"invoice_generated"`
	CommissionPaid        bool                `json:"commission_paid"`
	PackagingOrdered      bool                `json:"packaging_ordered"`
	ReminderSentAt        *time.Time          `json:"reminder_sent_at,omitempty"`

	Profile   *Profile `gorm:"foreignKey:profile_id" json:"profile,omitempty"`
	Organizer *User    `gorm:"foreignKey:organizer_id" json:"organizer,omitempty"`
	Invoice   *Invoice `gorm:"foreignKey:booking_request_id" json:"invoice,omitempty"`

	types.Timestamps
}

func (BookingRequest) TableName() string {
	return "booking_requests"
}
