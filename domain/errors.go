package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDishNotFound   = errors.New("dish not found")
	ErrEmptyDataset   = errors.New("dataset is empty")
	ErrInvalidOptions = errors.New("invalid recommend options")
)

// DishNotFoundError carries the query that did not resolve to any dish.
type DishNotFoundError struct {
	Query string
}

func (e *DishNotFoundError) Error() string {
	return fmt.Sprintf("Dish '%s' not found", e.Query)
}

func (e *DishNotFoundError) Is(target error) bool {
	return target == ErrDishNotFound
}
