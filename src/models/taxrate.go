package models

// TaxRate maps a country code to its VAT percentage. Read-only reference data.
type TaxRate struct {
	CountryCode string  `gorm:"primaryKey;size:2" json:"country_code"`
	VatRate     float64 `json:"vat_rate"`
}

func (TaxRate) TableName() string {
	return "tax_rates"
}
