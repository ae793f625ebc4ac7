package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Rows are deleted permanently; there is no soft delete.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	ImageURL    string          `json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductInput is the typed candidate for a create or update, built from a
// ProductForm. The service validates it before anything reaches storage.
type ProductInput struct {
	Name        string `validate:"required"`
	Description string
	Price       decimal.Decimal `validate:"gte=0"`
	Stock       int             `validate:"gte=0"`
	ImageURL    string          `validate:"omitempty,url"`
}

// ProductForm carries the raw form values of a create/edit submission.
// Keeping the strings around lets a failed form re-render exactly what the
// user typed.
type ProductForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Price       string `form:"price"`
	Stock       string `form:"stock"`
	ImageURL    string `form:"imageUrl"`
}

// Parse coerces the raw form values into a typed candidate. Coercion failures
// are collected, not short-circuited, so a submission with a bad price and a
// bad stock reports both. Fields that fail to parse stay at their zero value;
// the rule checks run on the candidate afterwards.
func (f *ProductForm) Parse() (*ProductInput, ValidationErrors) {
	var errs ValidationErrors

	input := &ProductInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		ImageURL:    strings.TrimSpace(f.ImageURL),
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		errs = append(errs, FieldError{Field: "price", Message: "Price must be a number"})
	} else {
		input.Price = price
	}

	stock, err := strconv.Atoi(strings.TrimSpace(f.Stock))
	if err != nil {
		errs = append(errs, FieldError{Field: "stock", Message: "Stock must be an integer"})
	} else {
		input.Stock = stock
	}

	return input, errs
}

// FormFromProduct pre-fills a form with a stored product, for the edit page.
func FormFromProduct(p *Product) *ProductForm {
	return &ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Stock:       strconv.Itoa(p.Stock),
		ImageURL:    p.ImageURL,
	}
}
