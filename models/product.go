package models

import "time"

// Product is a catalog entry. Category is a plain name reference, not a
// foreign key: renaming or removing a category leaves the product pointing
// at the old name.
type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Price         float64   `gorm:"not null" json:"price"`
	Stock         int       `gorm:"not null;default:0" json:"stock"`
	Category      string    `json:"category"`
	SecurityStock int       `gorm:"not null;default:0" json:"securityStock"` // low-stock alert threshold
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
