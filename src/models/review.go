package models

import "ftb/src/types"

type Review struct {
	ID         uint    `gorm:"primarykey" json:"review_id"`
	ProfileID  uint    `json:"profile_id,omitempty"`
	ReviewerID uint    `json:"reviewer_id,omitempty"`
	Rating     uint8   `json:"rating,omitempty"`
	Comment    *string `json:"comment,omitempty"`

	Profile  *Profile `gorm:"foreignKey:profile_id" json:"-"`
	Reviewer *User    `gorm:"foreignKey:reviewer_id" json:"reviewer,omitempty"`

	types.Timestamps
}
