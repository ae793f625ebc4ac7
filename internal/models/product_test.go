package models_test

import (
	"testing"

	"katalog/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductFormParse(t *testing.T) {
	form := &models.ProductForm{
		Name:        "  Pen ",
		Description: "A blue pen",
		Price:       "1.5",
		Stock:       "10",
		ImageURL:    "https://example.com/pen.jpg",
	}

	input, errs := form.Parse()

	assert.Empty(t, errs)
	assert.Equal(t, "Pen", input.Name)
	assert.Equal(t, "A blue pen", input.Description)
	assert.True(t, input.Price.Equal(decimal.NewFromFloat(1.5)))
	assert.Equal(t, 10, input.Stock)
	assert.Equal(t, "https://example.com/pen.jpg", input.ImageURL)
}

func TestProductFormParseCoercionErrors(t *testing.T) {
	form := &models.ProductForm{
		Name:  "Pen",
		Price: "abc",
		Stock: "1.5",
	}

	_, errs := form.Parse()

	assert.Len(t, errs, 2)
	assert.Equal(t, "price", errs[0].Field)
	assert.Equal(t, "Price must be a number", errs[0].Message)
	assert.Equal(t, "stock", errs[1].Field)
	assert.Equal(t, "Stock must be an integer", errs[1].Message)
}

func TestProductFormParseEmptyNumericFields(t *testing.T) {
	form := &models.ProductForm{Name: "Pen"}

	_, errs := form.Parse()

	// Empty price and stock are coercion failures, same as the HTML form
	// being bypassed entirely.
	assert.Equal(t, []string{"Price must be a number", "Stock must be an integer"}, errs.Messages())
}

func TestProductFormParseNegativeValues(t *testing.T) {
	form := &models.ProductForm{
		Name:  "Pen",
		Price: "-5",
		Stock: "-3",
	}

	// Negative values coerce fine; the range rules are the service's job.
	input, errs := form.Parse()

	assert.Empty(t, errs)
	assert.True(t, input.Price.IsNegative())
	assert.Equal(t, -3, input.Stock)
}

func TestFormFromProduct(t *testing.T) {
	product := &models.Product{
		ID:          7,
		Name:        "Pen",
		Description: "A blue pen",
		Price:       decimal.NewFromFloat(1.5),
		Stock:       10,
		ImageURL:    "https://example.com/pen.jpg",
	}

	form := models.FormFromProduct(product)

	assert.Equal(t, "Pen", form.Name)
	assert.Equal(t, "1.50", form.Price)
	assert.Equal(t, "10", form.Stock)
	assert.Equal(t, "https://example.com/pen.jpg", form.ImageURL)
}

func TestValidationErrorsError(t *testing.T) {
	errs := models.ValidationErrors{
		{Field: "name", Message: "Product name cannot be empty"},
		{Field: "price", Message: "Price must be a number"},
	}

	assert.Equal(t, "validation failed: Product name cannot be empty; Price must be a number", errs.Error())
	assert.Equal(t, []string{"Product name cannot be empty", "Price must be a number"}, errs.Messages())
}
