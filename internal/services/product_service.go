package services

import (
	"reflect"
	"sort"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// EventPublisher publishes catalog change events. A nil publisher disables
// eventing; requests never fail because of it.
type EventPublisher interface {
	PublishProductEvent(event rabbitmq.ProductEvent) error
}

// ProductService handles business logic related to products. It is the write
// boundary: every create/update is validated here before it reaches storage.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	v := validator.New()
	// Expose decimal.Decimal to the numeric validators so gte=0 applies to Price.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  v,
	}
}

// formFields maps struct field names to form field names and fixes the order
// validation errors are reported in.
var formFields = []struct{ structName, formName string }{
	{"Name", "name"},
	{"Price", "price"},
	{"Stock", "stock"},
	{"ImageURL", "imageUrl"},
}

func formFieldName(structName string) string {
	for _, f := range formFields {
		if f.structName == structName {
			return f.formName
		}
	}
	return structName
}

func fieldRank(formName string) int {
	for i, f := range formFields {
		if f.formName == formName {
			return i
		}
	}
	return len(formFields)
}

// messageFor translates a validator failure into the user-facing message for
// the form error list.
func messageFor(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "Name.required":
		return "Product name cannot be empty"
	case "Price.gte":
		return "Price must be greater than or equal to 0"
	case "Stock.gte":
		return "Stock must be greater than or equal to 0"
	case "ImageURL.url":
		return "Image URL must be a valid URL"
	default:
		return "Field '" + formFieldName(fe.Field()) + "' failed on the '" + fe.Tag() + "' tag"
	}
}

// validateForm coerces and validates a submission. All violations are
// reported together, ordered by form field (name, price, stock, imageUrl).
// Pure with respect to storage: nothing is persisted here.
func (s *ProductService) validateForm(form *models.ProductForm) (*models.ProductInput, models.ValidationErrors) {
	input, errs := form.Parse()

	if err := s.validate.Struct(input); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, models.FieldError{
				Field:   formFieldName(fe.Field()),
				Message: messageFor(fe),
			})
		}
	}

	sort.SliceStable(errs, func(i, j int) bool {
		return fieldRank(errs[i].Field) < fieldRank(errs[j].Field)
	})

	if len(errs) > 0 {
		return nil, errs
	}
	return input, nil
}

// GetAllProducts retrieves all products in creation order.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates a submission and inserts the product. On
// validation failure it returns models.ValidationErrors and storage is
// untouched.
func (s *ProductService) CreateProduct(form *models.ProductForm) (*models.Product, error) {
	input, errs := s.validateForm(form)
	if errs != nil {
		return nil, errs
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	s.publishEvent("created", product)
	return product, nil
}

// UpdateProduct replaces all mutable fields of an existing product. An
// unknown id short-circuits with models.ErrNotFound before validation; a
// validation failure leaves the stored row unchanged. ID and CreatedAt are
// never modified.
func (s *ProductService) UpdateProduct(id uint, form *models.ProductForm) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	input, errs := s.validateForm(form)
	if errs != nil {
		return nil, errs
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.ImageURL = input.ImageURL
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	s.publishEvent("updated", product)
	return product, nil
}

// DeleteProduct removes a product permanently.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.publishEvent("deleted", product)
	return nil
}

func (s *ProductService) publishEvent(action string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.NewProductEvent(action, product.ID, product.Name)
	if err := s.publisher.PublishProductEvent(event); err != nil {
		log.Warn().Err(err).Str("action", action).Uint("product_id", product.ID).
			Msg("failed to publish product event")
	}
}
