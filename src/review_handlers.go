package main

import (
	"errors"
	"log"
	"net/http"

	"ftb/src/db"
	"ftb/src/models"
	"ftb/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func reviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reviews", func(ctx *gin.Context) {
			if ctx.GetString("user_type") != string(types.USER_ORGANIZER) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "only organizers may leave a review"})
				return
			}
			var body types.CreateReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			review := models.Review{
				ProfileID:  body.ProfileID,
				ReviewerID: userId,
				Rating:     body.Rating,
				Comment:    body.Comment,
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var profile models.Profile
				if err := tx.Where(&models.Profile{ID: body.ProfileID}).First(&profile).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewValidationError("profile [%d] does not exist", body.ProfileID)
					}
					return err
				}
				var confirmed int64
				if err := tx.
					Model(&models.BookingRequest{}).
					Where(&models.BookingRequest{ProfileID: body.ProfileID, OrganizerID: userId}).
					Where("status = ?", types.BOOKING_CONFIRMED).
					Count(&confirmed).
					Error; err != nil {
					return err
				}
				if confirmed == 0 {
					return types.NewAuthorizationError("only organizers with a confirmed booking may review profile [%d]", body.ProfileID)
				}
				return tx.Create(&review).Error
			})
			if err != nil {
				log.Printf("Error creating review: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": review})
		})
	return g
}
