package postgres

import (
	"context"
	"fmt"

	"ecoEats/domain"

	"gorm.io/gorm"
)

// FoodRepository reads the dataset from the foods table. It never writes.
type FoodRepository struct {
	DB *gorm.DB
}

func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{
		DB: db,
	}
}

// FindAll returns every row ordered by id, which is the dataset order.
func (r *FoodRepository) FindAll(ctx context.Context) ([]domain.RawFood, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var foods []domain.RawFood
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find foods: %w", err)
	}

	return foods, nil
}
