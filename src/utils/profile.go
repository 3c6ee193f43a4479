package utils

import (
	"context"
	"errors"
	"log"

	"ftb/src/db"
	"ftb/src/lib"
	"ftb/src/models"
	"ftb/src/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// geocodeBaseLocation resolves the profile's base location, best-effort: a
// miss or provider failure leaves the coordinate nil and the profile excluded
// from radius search.
func geocodeBaseLocation(ctx context.Context, location string) (*float64, *float64) {
	if location == "" {
		return nil, nil
	}
	lat, lon, err := lib.GeocodeCached(ctx, location)
	if err != nil {
		log.Printf("Could not geocode base location %q: %s\n", location, err.Error())
		return nil, nil
	}
	return &lat, &lon
}

func CreateProfile(ctx context.Context, body *types.CreateProfileRequestBody, ownerId uint) (*models.Profile, error) {
	lat, lon := geocodeBaseLocation(ctx, body.BaseLocation)
	profile := models.Profile{
		OwnerID:                 ownerId,
		FoodTruckName:           body.FoodTruckName,
		Slug:                    slug.Make(body.FoodTruckName),
		BaseLatitude:            lat,
		BaseLongitude:           lon,
		OperationRadiusKm:       body.OperationRadiusKm,
		WebsiteURL:              body.WebsiteURL,
		Offer:                   body.Offer,
		LongTermRentalAvailable: body.LongTermRentalAvailable,
	}
	if body.FoodTruckDescription != "" {
		profile.FoodTruckDescription = &body.FoodTruckDescription
	}
	if body.BaseLocation != "" {
		profile.BaseLocation = &body.BaseLocation
	}

	d := db.GetDb()
	if err := d.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&profile).Error
	}); err != nil {
		return nil, err
	}
	return &profile, nil
}

func UpdateProfile(ctx context.Context, profileId uint, body *types.CreateProfileRequestBody, actorId uint) (*models.Profile, error) {
	d := db.GetDb()
	var profile models.Profile
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Profile{ID: profileId}).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewValidationError("profile [%d] does not exist", profileId)
			}
			return err
		}
		if profile.OwnerID != actorId {
			return types.NewAuthorizationError("only the profile owner may edit profile [%d]", profileId)
		}
		lat, lon := geocodeBaseLocation(ctx, body.BaseLocation)
		profile.FoodTruckName = body.FoodTruckName
		profile.Slug = slug.Make(body.FoodTruckName)
		profile.BaseLatitude = lat
		profile.BaseLongitude = lon
		profile.OperationRadiusKm = body.OperationRadiusKm
		profile.WebsiteURL = body.WebsiteURL
		profile.Offer = body.Offer
		profile.LongTermRentalAvailable = body.LongTermRentalAvailable
		if body.FoodTruckDescription != "" {
			profile.FoodTruckDescription = &body.FoodTruckDescription
		} else {
			profile.FoodTruckDescription = nil
		}
		if body.BaseLocation != "" {
			profile.BaseLocation = &body.BaseLocation
		} else {
			profile.BaseLocation = nil
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
