package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/killjoy47/MniseCosmetics/models"
	"gorm.io/gorm"
)

// Notifier receives the full product list after every stock-affecting write.
// Implementations must not block the calling write.
type Notifier interface {
	PublishProducts(products []models.Product)
}

// noopNotifier lets the store run without a hub (tests, CLI usage).
type noopNotifier struct{}

func (noopNotifier) PublishProducts([]models.Product) {}

// Store is the single data-access layer: catalog, sales and credentials.
type Store struct {
	db       *gorm.DB
	notifier Notifier

	// Serializes the list-then-publish pair in broadcast, so two
	// concurrent writes cannot hand the notifier an older catalog after
	// a newer one.
	broadcastMu sync.Mutex
}

func New(db *gorm.DB, notifier Notifier) *Store {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Store{db: db, notifier: notifier}
}

// ProductInput is a full product record: an update replaces every field,
// it never merges. Sending a partial record drops the missing fields.
type ProductInput struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name" binding:"required"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	Category      string  `json:"category"`
	SecurityStock int     `json:"securityStock"`
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &models.ValidationError{Field: "name", Reason: "obligatoire"}
	}
	if in.Price < 0 {
		return &models.ValidationError{Field: "price", Reason: "doit être positif"}
	}
	if in.Stock < 0 {
		return &models.ValidationError{Field: "stock", Reason: "doit être positif"}
	}
	if in.SecurityStock < 0 {
		return &models.ValidationError{Field: "securityStock", Reason: "doit être positif"}
	}
	return nil
}

// ListProducts returns the catalog in insertion order.
func (s *Store) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return products, nil
}

// UpsertProduct creates the product when ID is zero, otherwise replaces the
// stored record field for field. The refreshed catalog is broadcast.
func (s *Store) UpsertProduct(in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := models.Product{
		ID:            in.ID,
		Name:          in.Name,
		Price:         in.Price,
		Stock:         in.Stock,
		Category:      in.Category,
		SecurityStock: in.SecurityStock,
	}

	if in.ID == 0 {
		if err := s.db.Create(&product).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
	} else {
		res := s.db.Model(&models.Product{}).Where("id = ?", in.ID).
			Select("name", "price", "stock", "category", "security_stock").
			Updates(&product)
		if res.Error != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStorage, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, &models.ProductNotFoundError{ID: in.ID}
		}
	}

	s.broadcast()
	return &product, nil
}

// ListCategories returns category names in insertion order.
func (s *Store) ListCategories() ([]string, error) {
	var cats []models.Category
	if err := s.db.Order("id asc").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names, nil
}

// AddCategories inserts the names that do not exist yet (exact,
// case-sensitive match) and skips the rest. Returns the full list.
func (s *Store) AddCategories(names []string) ([]string, error) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cat := models.Category{Name: name}
		if err := s.db.Where("name = ?", name).FirstOrCreate(&cat).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
	}

	s.broadcast()
	return s.ListCategories()
}

// RenameProduct changes a product's name, looked up by case-insensitive
// exact match. Used by the assistant's admin mutations.
func (s *Store) RenameProduct(oldName, newName string) (*models.Product, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "obligatoire"}
	}

	product, err := s.findByName(oldName)
	if err != nil {
		return nil, err
	}
	product.Name = newName
	if err := s.db.Model(product).Update("name", newName).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	s.broadcast()
	return product, nil
}

// AddStock increments a product's stock, looked up by case-insensitive
// exact match.
func (s *Store) AddStock(name string, qty int) (*models.Product, error) {
	if qty <= 0 {
		return nil, &models.ValidationError{Field: "quantity", Reason: "doit être supérieur à zéro"}
	}

	product, err := s.findByName(name)
	if err != nil {
		return nil, err
	}
	res := s.db.Model(product).Update("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, res.Error)
	}
	product.Stock += qty

	s.broadcast()
	return product, nil
}

func (s *Store) findByName(name string) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return &product, nil
}

// broadcast pushes the refreshed catalog to connected terminals. It must
// never fail the triggering write, so read errors are only logged by the
// notifier side and an empty push is skipped.
func (s *Store) broadcast() {
	s.broadcastMu.Lock()
	defer s.broadcastMu.Unlock()

	products, err := s.ListProducts()
	if err != nil {
		return
	}
	s.notifier.PublishProducts(products)
}
