package models

import "ftb/src/types"

type User struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Email            string         `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash     string         `json:"-"`
	UserType         types.UserType `json:"user_type,omitempty"`
	FirstName        string         `json:"first_name,omitempty"`
	LastName         string         `json:"last_name,omitempty"`
	CompanyName      *string        `json:"company_name,omitempty"`
	PhoneNumber      *string        `json:"phone_number,omitempty"`
	CountryCode      string         `gorm:"default:'PL'" json:"country_code,omitempty"`
	StripeCustomerID *string        `json:"-"`
	IsBlocked        bool           `json:"is_blocked,omitempty"`
	Role             string         `gorm:"default:'user'" json:"role,omitempty"`

	Profiles []Profile        `gorm:"foreignKey:owner_id" json:"profiles,omitempty"`
	Bookings []BookingRequest `gorm:"foreignKey:organizer_id" json:"bookings,omitempty"`

	types.Timestamps
}
