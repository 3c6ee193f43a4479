package main

import (
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"time"

	"ftb/src/utils"

	"github.com/gin-gonic/gin"
)

// cronSecretMiddleware guards the sweep endpoints so only the platform
// scheduler can trigger them over HTTP.
func cronSecretMiddleware(ctx *gin.Context) {
	secret := os.Getenv("CRON_SECRET")
	supplied := ctx.Request.Header.Get("X-Cron-Secret")
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(supplied)) != 1 {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
}

func cronHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	cron := g.Group("/cron")
	cron.Use(cronSecretMiddleware)
	cron.
		POST("/reminders", func(ctx *gin.Context) {
			sent, err := utils.SendPackagingReminders(time.Now())
			if err != nil {
				log.Printf("Error running reminder sweep: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"sent": sent})
		}).
		POST("/invoices", func(ctx *gin.Context) {
			issued, err := utils.SweepUnbilledBookings(time.Now())
			if err != nil {
				log.Printf("Error running invoice sweep: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"issued": issued})
		})
	return g
}
