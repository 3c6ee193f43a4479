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

func publicProfileHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/profiles", func(ctx *gin.Context) {
			var query types.ProfileSearchQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filters := types.ProfileSearchFilters{
				Cuisine:    query.Cuisine,
				PostalCode: query.PostalCode,
				MinRating:  query.MinRating,
				LongTerm:   query.LongTerm,
			}
			if (query.EventStartDate == "") != (query.EventEndDate == "") {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "event_start_date and event_end_date must be provided together"})
				return
			}
			if query.EventStartDate != "" {
				start, err := utils.ParseEventDate(query.EventStartDate)
				if err != nil {
					respondError(ctx, err)
					return
				}
				end, err := utils.ParseEventDate(query.EventEndDate)
				if err != nil {
					respondError(ctx, err)
					return
				}
				filters.EventStartDate = &start
				filters.EventEndDate = &end
			}
			rows, err := utils.SearchProfiles(ctx.Request.Context(), &filters)
			if err != nil {
				log.Printf("Error searching profiles: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rows, "count": len(rows)})
		}).
		GET("/profiles/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var profile models.Profile
			if err := db.
				Model(&models.Profile{}).
				Where(&models.Profile{ID: params.ID}).
				Preload("Reviews").
				Preload("Reviews.Reviewer").
				First(&profile).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": profile})
		}).
		GET("/profiles/:id/reviews", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var reviews []models.Review
			if err := db.
				Model(&models.Review{}).
				Where(&models.Review{ProfileID: params.ID}).
				Preload("Reviewer").
				Order("created_at DESC").
				Find(&reviews).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reviews, "count": len(reviews)})
		})
	return g
}

func profileHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/profiles", func(ctx *gin.Context) {
			if ctx.GetString("user_type") != string(types.USER_OWNER) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "only food truck owners may create a profile"})
				return
			}
			var body types.CreateProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			profile, err := utils.CreateProfile(ctx.Request.Context(), &body, userId)
			if err != nil {
				log.Printf("Error creating profile: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": profile})
		}).
		PUT("/profiles/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			profile, err := utils.UpdateProfile(ctx.Request.Context(), params.ID, &body, userId)
			if err != nil {
				log.Printf("Error updating profile [%d]: %s\n", params.ID, err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": profile})
		}).
		GET("/me/profile", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var profile models.Profile
			if err := db.
				Model(&models.Profile{}).
				Where(&models.Profile{OwnerID: userId}).
				First(&profile).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": profile})
		})
	return g
}
