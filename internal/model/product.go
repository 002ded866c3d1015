package model

import "github.com/shopspring/decimal"

func init() {
	// Prices are written as JSON numbers, both in API responses and in the
	// products file.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog record. OwnerID references the creating user and is
// never changed after creation.
type Product struct {
	ID          int             `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"product_name" gorm:"size:255;not null"`
	Description string          `json:"product_description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"product_price" gorm:"type:decimal(20,2);not null;default:0"`
	Tags        []string        `json:"product_tag" gorm:"serializer:json;type:json"`
	OwnerID     int             `json:"owner_id" gorm:"not null;index"`
}
