package store

import (
	"log"

	"github.com/killjoy47/MniseCosmetics/models"
	"golang.org/x/crypto/bcrypt"
)

// Seed initialises an empty database with the default categories and one
// credential per role. Existing data is left alone.
func (s *Store) Seed() error {
	var catCount int64
	if err := s.db.Model(&models.Category{}).Count(&catCount).Error; err != nil {
		return err
	}
	if catCount == 0 {
		for _, name := range []string{"Soins", "Parfums", "Maquillage"} {
			if err := s.db.Create(&models.Category{Name: name}).Error; err != nil {
				return err
			}
		}
		log.Println("✅ Catégories initialisées")
	}

	var credCount int64
	if err := s.db.Model(&models.Credential{}).Count(&credCount).Error; err != nil {
		return err
	}
	if credCount == 0 {
		defaults := map[string]string{
			models.RoleAdmin:     "admin",
			models.RoleSeller:    "123",
			models.RoleMasterKey: "0000",
		}
		for role, password := range defaults {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			cred := models.Credential{Role: role, PasswordHash: string(hash)}
			if err := s.db.Create(&cred).Error; err != nil {
				return err
			}
		}
		log.Println("✅ Utilisateurs initialisés (pensez à changer les mots de passe par défaut)")
	}

	return nil
}
