package models

// Role values for Credential and for the access gate.
const (
	RoleAdmin     = "admin"
	RoleSeller    = "seller"
	RoleMasterKey = "masterKey"
)

// Credential holds one bcrypt-hashed password per role. Exactly one record
// exists per role; the masterKey credential only gates password resets.
type Credential struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Role         string `gorm:"uniqueIndex;not null" json:"role"`
	PasswordHash string `gorm:"not null" json:"-"`
}
