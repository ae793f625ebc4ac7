package repositories_test

import (
	"testing"

	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMemoryRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	first := &models.Product{Name: "Pen", Price: decimal.NewFromFloat(1.5), Stock: 10}
	second := &models.Product{Name: "Notebook", Price: decimal.NewFromInt(3), Stock: 5}

	assert.NoError(t, repo.Create(first))
	assert.NoError(t, repo.Create(second))

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestMemoryRepository_GetAllInsertionOrder(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	for _, name := range []string{"C", "A", "B"} {
		assert.NoError(t, repo.Create(&models.Product{Name: name, Price: decimal.NewFromInt(1)}))
	}

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, "C", products[0].Name)
	assert.Equal(t, "A", products[1].Name)
	assert.Equal(t, "B", products[2].Name)
}

func TestMemoryRepository_GetByID(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	product := &models.Product{Name: "Pen", Price: decimal.NewFromFloat(1.5), Stock: 10}
	assert.NoError(t, repo.Create(product))

	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Pen", got.Name)

	_, err = repo.GetByID(999999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryRepository_UpdateRefreshesUpdatedAt(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	product := &models.Product{Name: "Pen", Price: decimal.NewFromFloat(1.5)}
	assert.NoError(t, repo.Create(product))
	created := product.CreatedAt

	product.Name = "Fancy Pen"
	assert.NoError(t, repo.Update(product))

	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Fancy Pen", got.Name)
	assert.Equal(t, created, got.CreatedAt)
	assert.True(t, !got.UpdatedAt.Before(created))

	err = repo.Update(&models.Product{ID: 999999, Name: "Ghost"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryRepository_DeleteIsPermanentAndIDsAreNotReused(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	product := &models.Product{Name: "Pen", Price: decimal.NewFromFloat(1.5)}
	assert.NoError(t, repo.Create(product))
	deletedID := product.ID

	assert.NoError(t, repo.Delete(deletedID))

	_, err := repo.GetByID(deletedID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(deletedID), models.ErrNotFound)

	next := &models.Product{Name: "Notebook", Price: decimal.NewFromInt(3)}
	assert.NoError(t, repo.Create(next))
	assert.NotEqual(t, deletedID, next.ID)

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Notebook", products[0].Name)
}
