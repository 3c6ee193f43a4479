package models

import "ftb/src/types"

// Profile is a food-truck listing. BaseLatitude/BaseLongitude stay nil when
// geocoding the base location failed; OperationRadiusKm stays nil when the
// owner has not set one. Either nil excludes the profile from radius search.
type Profile struct {
	ID                      uint        `gorm:"primarykey" json:"id"`
	OwnerID                 uint        `json:"owner_id,omitempty"`
	FoodTruckName           string      `json:"food_truck_name,omitempty"`
	Slug                    string      `gorm:"index" json:"slug,omitempty"`
	FoodTruckDescription    *string     `json:"food_truck_description,omitempty"`
	BaseLocation            *string     `json:"base_location,omitempty"`
	BaseLatitude            *float64    `json:"base_latitude,omitempty"`
	BaseLongitude           *float64    `json:"base_longitude,omitempty"`
	OperationRadiusKm       *float64    `json:"operation_radius_km,omitempty"`
	WebsiteURL              *string     `json:"website_url,omitempty"`
	Offer                   types.JSONB `gorm:"type:jsonb" json:"offer,omitempty"`
	LongTermRentalAvailable bool        `json:"long_term_rental_available,omitempty"`

	Owner    *User            `gorm:"foreignKey:owner_id" json:"owner,omitempty"`
	Bookings []BookingRequest `gorm:"foreignKey:profile_id" json:"bookings,omitempty"`
	Reviews  []Review         `gorm:"foreignKey:profile_id" json:"reviews,omitempty"`

	types.Timestamps
}

func (Profile) TableName() string {
	return "food_truck_profiles"
}
