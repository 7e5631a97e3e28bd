package models

import "time"

// Sale is immutable once created. TotalPrice is whatever the seller
// submitted: it may differ from the sum of the line items (custom pricing
// and discounts are allowed at the till).
type Sale struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference    string     `gorm:"uniqueIndex" json:"reference"`
	ClientNumber string     `json:"clientNumber,omitempty"`
	Items        []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice   float64    `gorm:"not null" json:"totalPrice"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// SaleItem snapshots the product's name and price at sale time, so later
// product edits never rewrite history.
type SaleItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	SaleID    uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
