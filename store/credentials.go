package store

import (
	"errors"
	"fmt"

	"github.com/killjoy47/MniseCosmetics/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Authenticate checks a role's password. Wrong role and wrong password are
// indistinguishable to the caller.
func (s *Store) Authenticate(role, password string) error {
	cred, err := s.credential(role)
	if err != nil {
		if errors.Is(err, models.ErrCredentialNotFound) {
			return models.ErrForbidden
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return models.ErrForbidden
	}
	return nil
}

// ResetCredentials overwrites the admin and/or seller passwords after
// checking the master key. A wrong master key changes nothing.
func (s *Store) ResetCredentials(masterKey, newAdminPwd, newSellerPwd string) error {
	if err := s.Authenticate(models.RoleMasterKey, masterKey); err != nil {
		return models.ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if newAdminPwd != "" {
			if err := setPassword(tx, models.RoleAdmin, newAdminPwd); err != nil {
				return err
			}
		}
		if newSellerPwd != "" {
			if err := setPassword(tx, models.RoleSeller, newSellerPwd); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) credential(role string) (*models.Credential, error) {
	var cred models.Credential
	err := s.db.Where("role = ?", role).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return &cred, nil
}

func setPassword(tx *gorm.DB, role, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	res := tx.Model(&models.Credential{}).Where("role = ?", role).
		Update("password_hash", string(hash))
	if res.Error != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrCredentialNotFound
	}
	return nil
}
