package models

// Category is append-only: no rename or delete path exists.
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name string `gorm:"unique;not null" json:"name"`
}
