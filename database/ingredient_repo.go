package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db}
}

// FindAll returns catalogue ingredients, optionally narrowed to names
// starting with namePrefix (case-insensitive).
func (r *IngredientRepo) FindAll(namePrefix string) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	query := r.db.Order("name")
	if namePrefix != "" {
		query = query.Where("lower(name) LIKE lower(?)", namePrefix+"%")
	}
	err := query.Find(&ingredients).Error
	return ingredients, err
}

// FindByID returns an ingredient by its ID
func (r *IngredientRepo) FindByID(id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("ingredient")
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Add inserts a single catalogue ingredient
func (r *IngredientRepo) Add(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}

// AddBatch bulk-seeds the ingredient catalogue
func (r *IngredientRepo) AddBatch(ingredients []*models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.CreateInBatches(ingredients, 500).Error
}
