package utils

import (
	"context"
	"sort"
	"time"

	"ftb/src/db"
	"ftb/src/lib"
	"ftb/src/models"
	"ftb/src/types"
)

// ProfileSearchRow is one search result: profile columns plus the review
// aggregates and, for location-filtered searches, the distance in km.
type ProfileSearchRow struct {
	ID                      uint        `json:"id"`
	OwnerID                 uint        `json:"owner_id"`
	FoodTruckName           string      `json:"food_truck_name"`
	Slug                    string      `json:"slug,omitempty"`
	FoodTruckDescription    *string     `json:"food_truck_description,omitempty"`
	BaseLocation            *string     `json:"base_location,omitempty"`
	BaseLatitude            *float64    `json:"base_latitude,omitempty"`
	BaseLongitude           *float64    `json:"base_longitude,omitempty"`
	OperationRadiusKm       *float64    `json:"operation_radius_km,omitempty"`
	WebsiteURL              *string     `json:"website_url,omitempty"`
	Offer                   types.JSONB `gorm:"type:jsonb" json:"offer,omitempty"`
	LongTermRentalAvailable bool        `json:"long_term_rental_available"`
	AverageRating           float64     `json:"average_rating"`
	ReviewCount             int64       `json:"review_count"`
	Distance                *float64    `gorm:"-" json:"distance,omitempty"`
}

// WindowsOverlap reports whether [s1,e1] and [s2,e2] overlap, endpoints
// inclusive: s1<=e2 AND s2<=e1.
func WindowsOverlap(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}

// SearchProfiles composes the attribute, availability and radius filters into
// one ranked result set. An unresolvable postal code is a client error, never
// a silent skip of the distance filter.
func SearchProfiles(ctx context.Context, filters *types.ProfileSearchFilters) ([]ProfileSearchRow, error) {
	var originLat, originLon float64
	hasOrigin := false
	if filters.PostalCode != "" {
		lat, lon, err := lib.GeocodeCached(ctx, filters.PostalCode)
		if err != nil {
			return nil, types.NewValidationError("invalid postal code %q", filters.PostalCode)
		}
		originLat, originLon = lat, lon
		hasOrigin = true
	}

	d := db.GetDb()
	q := d.
		Model(&models.Profile{}).
		Select("food_truck_profiles.*, COALESCE(AVG(reviews.rating), 0) AS average_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.profile_id = food_truck_profiles.id AND reviews.deleted_at IS NULL").
		Group("food_truck_profiles.id").
		Order("food_truck_profiles.id ASC")

	if filters.Cuisine != "" {
		q = q.Where("food_truck_profiles.offer -> 'dishes' @> to_jsonb(?::text)", filters.Cuisine)
	}
	if filters.LongTerm != nil {
		q = q.Where("food_truck_profiles.long_term_rental_available = ?", *filters.LongTerm)
	}
	if filters.EventStartDate != nil && filters.EventEndDate != nil {
		q = q.Where(
			"food_truck_profiles.id NOT IN (SELECT profile_id FROM booking_requests WHERE status = ? AND event_start_date <= ? AND event_end_date >= ? AND deleted_at IS NULL)",
			types.BOOKING_CONFIRMED, *filters.EventEndDate, *filters.EventStartDate,
		)
	}

	var rows []ProfileSearchRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	if filters.MinRating != nil {
		filtered := rows[:0]
		for _, r := range rows {
			if r.AverageRating >= *filters.MinRating {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	if hasOrigin {
		inRange := make([]ProfileSearchRow, 0, len(rows))
		for _, r := range rows {
			p := models.Profile{
				BaseLatitude:      r.BaseLatitude,
				BaseLongitude:     r.BaseLongitude,
				OperationRadiusKm: r.OperationRadiusKm,
			}
			if !WithinRadius(&p, originLat, originLon) {
				continue
			}
			dist := DistanceKm(*r.BaseLatitude, *r.BaseLongitude, originLat, originLon)
			r.Distance = &dist
			inRange = append(inRange, r)
		}
		sort.SliceStable(inRange, func(i, j int) bool {
			return *inRange[i].Distance < *inRange[j].Distance
		})
		rows = inRange
	}

	return rows, nil
}
