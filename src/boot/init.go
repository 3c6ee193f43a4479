package boot

import (
	"log"
	"time"

	"ftb/src/db"
	"ftb/src/lib"
	"ftb/src/models"
	"ftb/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.BookingRequest{},
		&models.Review{},
		&models.Invoice{},
		&models.TaxRate{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	seedTaxRates(db)

	return db
}

func seedTaxRates(db *gorm.DB) {
	rate := models.TaxRate{CountryCode: "PL", VatRate: 23}
	if err := db.Where(&models.TaxRate{CountryCode: rate.CountryCode}).FirstOrCreate(&rate).Error; err != nil {
		log.Printf("Error seeding tax rates: %s\n", err.Error())
	}
}

// InitScheduler registers the two daily sweeps: packaging reminders in the
// morning, commission invoices for just-ended events shortly after midnight.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	if _, err := lib.CreateDailyJob("packaging-reminders", 8, 0, func() {
		if _, err := utils.SendPackagingReminders(time.Now()); err != nil {
			log.Printf("Error in packaging reminder job: %s\n", err.Error())
		}
	}); err != nil {
		log.Printf("Error scheduling reminder job: %s\n", err.Error())
	}
	if _, err := lib.CreateDailyJob("commission-invoice-sweep", 1, 0, func() {
		if _, err := utils.SweepUnbilledBookings(time.Now()); err != nil {
			log.Printf("Error in invoice sweep job: %s\n", err.Error())
		}
	}); err != nil {
		log.Printf("Error scheduling invoice sweep job: %s\n", err.Error())
	}
	jobsWaitingInQueue := len(sched.Jobs())
	log.Println("Jobs in queue:", jobsWaitingInQueue)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
