package main

import (
	"errors"
	"log"
	"net/http"

	"ftb/src/db"
	"ftb/src/models"
	"ftb/src/types"
	"ftb/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			if ctx.GetString("user_type") != string(types.USER_ORGANIZER) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "only organizers may place a booking request"})
				return
			}
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking, err := utils.CreateBooking(&body, userId)
			if err != nil {
				log.Printf("Error creating booking request: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			userType := types.UserType(ctx.GetString("user_type"))
			bookings, err := utils.MyBookings(userId, userType)
			if err != nil {
				log.Printf("Error listing bookings for user [%d]: %s\n", userId, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var booking models.BookingRequest
			if err := db.
				Model(&models.BookingRequest{}).
				Where(&models.BookingRequest{ID: params.ID}).
				Preload("Profile").
				Preload("Organizer").
				Preload("Invoice").
				First(&booking).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			isParticipant := booking.OrganizerID == userId ||
				(booking.Profile != nil && booking.Profile.OwnerID == userId)
			if !isParticipant && ctx.GetString("role") != "admin" {
				ctx.Status(http.StatusForbidden)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PATCH("/bookings/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			userType := types.UserType(ctx.GetString("user_type"))
			booking, err := utils.SetBookingStatus(params.ID, userId, userType, body.NewStatus)
			if err != nil {
				log.Printf("Error updating status for booking [%d]: %s\n", params.ID, err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})
	return g
}
