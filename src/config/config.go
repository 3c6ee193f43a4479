package config

import (
	"fmt"
	"os"
	"strconv"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"
const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// Commission invoices are issued in PLN with a 7-day payment term.
const INVOICE_CURRENCY = "pln"
const INVOICE_DUE_DAYS = 7

const defaultCommissionNet = 200.00

// PlatformCommissionNet is the net platform fee charged per confirmed booking.
// Tunable via the PLATFORM_COMMISSION_NET environment variable.
func PlatformCommissionNet() float64 {
	v := os.Getenv("PLATFORM_COMMISSION_NET")
	if v == "" {
		return defaultCommissionNet
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return defaultCommissionNet
	}
	return f
}
