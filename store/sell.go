package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/killjoy47/MniseCosmetics/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleLine is one product+quantity pair submitted by a seller terminal.
type SaleLine struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// Sell applies a multi-item sale atomically. Every line is checked and
// decremented inside one transaction: if any product is missing or short,
// the whole sale aborts and no stock moves. Line items snapshot the
// product's current name and price, never client-submitted values.
// totalPrice is stored as submitted: the till may apply discounts, so it
// is deliberately not recomputed.
func (s *Store) Sell(items []SaleLine, totalPrice float64, clientNumber string) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, &models.ValidationError{Field: "items", Reason: "au moins un article requis"}
	}
	if totalPrice < 0 {
		return nil, &models.ValidationError{Field: "totalPrice", Reason: "doit être positif"}
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, &models.ValidationError{Field: "quantity", Reason: "doit être supérieur à zéro"}
		}
	}

	now := time.Now().UTC()
	sale := models.Sale{
		Reference:    now.Format("20060102150405") + "-" + uuid.NewString(),
		ClientNumber: clientNumber,
		TotalPrice:   totalPrice,
		// UTC explicitly: the assistant's period sums and the date filter
		// compute their boundaries in UTC.
		CreatedAt: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			query := tx
			// Postgres serializes concurrent sales on the same row; NOWAIT
			// turns a contended lock into an immediate transient failure
			// instead of a stalled till. SQLite locks the whole database on
			// write, so the clause is skipped there.
			if tx.Dialector.Name() == "postgres" {
				query = tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"})
			}

			var product models.Product
			if err := query.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &models.ProductNotFoundError{ID: item.ProductID}
				}
				if isLockContention(err) {
					return models.ErrTransient
				}
				return fmt.Errorf("%w: %v", models.ErrStorage, err)
			}

			// Guarded decrement: the WHERE clause re-checks stock at write
			// time, so even without the row lock two sales can never drive
			// stock below zero.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				if isLockContention(res.Error) {
					return models.ErrTransient
				}
				return fmt.Errorf("%w: %v", models.ErrStorage, res.Error)
			}
			if res.RowsAffected == 0 {
				return &models.InsufficientStockError{
					Product:   product.Name,
					Available: product.Stock,
					Requested: item.Quantity,
				}
			}

			sale.Items = append(sale.Items, models.SaleItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  item.Quantity,
			})
		}

		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast()
	return &sale, nil
}

// ListSales returns sales newest first, optionally restricted to one UTC day.
func (s *Store) ListSales(day *time.Time) ([]models.Sale, error) {
	query := s.db.Preload("Items").Order("created_at desc")
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		end := start.Add(24 * time.Hour)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var sales []models.Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return sales, nil
}

// SalesTotalBetween sums totalPrice over sales created in [start, end).
func (s *Store) SalesTotalBetween(start, end time.Time) (float64, int64, error) {
	var row struct {
		Total float64
		Count int64
	}
	err := s.db.Model(&models.Sale{}).
		Select("COALESCE(SUM(total_price), 0) AS total, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return row.Total, row.Count, nil
}

func isLockContention(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "could not obtain lock") ||
		strings.Contains(msg, "lock not available") ||
		strings.Contains(msg, "database is locked")
}
