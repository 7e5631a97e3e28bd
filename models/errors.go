package models

import (
	"errors"
	"fmt"
)

// Failure categories surfaced by the store and checked by the HTTP layer.
var (
	ErrUnauthenticated    = errors.New("authentification requise")
	ErrForbidden          = errors.New("accès refusé")
	ErrProductNotFound    = errors.New("produit introuvable")
	ErrCredentialNotFound = errors.New("identifiant introuvable")
	ErrInsufficientStock  = errors.New("stock insuffisant")
	ErrValidation         = errors.New("requête invalide")
	ErrStorage            = errors.New("erreur de stockage")
	ErrTransient          = errors.New("conflit temporaire, veuillez réessayer")
)

// ProductNotFoundError identifies which product id a sale referenced.
type ProductNotFoundError struct {
	ID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("produit %d introuvable", e.ID)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// InsufficientStockError names the product a sale would have oversold.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuffisant pour %s (%d restants, %d demandés)",
		e.Product, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ValidationError reports a malformed field in a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("champ %s invalide: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
