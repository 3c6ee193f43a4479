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

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/users", func(ctx *gin.Context) {
			db := db.GetDb()
			var users []models.User
			if err := db.
				Model(&models.User{}).
				Order("created_at DESC").
				Find(&users).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
		}).
		PATCH("/users/:id/block", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body struct {
				IsBlocked *bool `json:"is_blocked" binding:"required"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.User{}).
					Where("id = ?", params.ID).
					Update("is_blocked", *body.IsBlocked).
					Error
			}); err != nil {
				log.Printf("Error updating user [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PATCH("/bookings/:id/flags", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateBookingFlagsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.CommissionPaid != nil {
				updates["commission_paid"] = *body.CommissionPaid
			}
			if body.PackagingOrdered != nil {
				updates["packaging_ordered"] = *body.PackagingOrdered
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "no flags to update"})
				return
			}
			db := db.GetDb()
			var booking models.BookingRequest
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where(&models.BookingRequest{ID: params.ID}).First(&booking).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewValidationError("booking request [%d] does not exist", params.ID)
					}
					return err
				}
				return tx.
					Model(&models.BookingRequest{}).
					Where("id = ?", booking.ID).
					Updates(updates).
					Error
			})
			if err != nil {
				log.Printf("Error updating flags for booking [%d]: %s\n", params.ID, err.Error())
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
