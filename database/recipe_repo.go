package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
)

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db}
}

// IngredientSelection is one (ingredient, amount) pair submitted with a
// recipe create or update.
type IngredientSelection struct {
	IngredientID uuid.UUID
	Amount       int
}

// RecipeFilter narrows a recipe listing. The user references are explicit;
// there is no ambient "current user" in this layer.
type RecipeFilter struct {
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	AuthorID    *uuid.UUID
}

// FindAll returns recipes newest first, with tags, ingredient attachments
// and author preloaded.
func (r *RecipeRepo) FindAll(filter RecipeFilter) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	query := r.db.
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		Order("recipes.created DESC")

	if filter.FavoritedBy != nil {
		query = query.Joins(
			"JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?",
			*filter.FavoritedBy)
	}
	if filter.InCartOf != nil {
		query = query.Joins(
			"JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?",
			*filter.InCartOf)
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}

	err := query.Find(&recipes).Error
	return recipes, err
}

// FindByID returns a recipe with tags, ingredient attachments and author preloaded
func (r *RecipeRepo) FindByID(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("recipe")
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Add persists a recipe together with its ingredient attachments and tag set
// in one transaction. Nothing is visible if any step fails.
func (r *RecipeRepo) Add(recipe *models.Recipe, items []IngredientSelection, tagIDs []uuid.UUID) error {
	if err := validateSelections(items); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := attachIngredients(tx, recipe.ID, items); err != nil {
			return err
		}
		return replaceTags(tx, recipe, tagIDs)
	})
}

// Update replaces the recipe row, its ingredient attachments and its tag set
// wholesale in one transaction.
func (r *RecipeRepo) Update(recipe *models.Recipe, items []IngredientSelection, tagIDs []uuid.UUID) error {
	if err := validateSelections(items); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]any{
				"name":         recipe.Name,
				"image":        recipe.Image,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("recipe")
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&models.IngredientAmount{}).Error; err != nil {
			return err
		}
		if err := attachIngredients(tx, recipe.ID, items); err != nil {
			return err
		}
		return replaceTags(tx, recipe, tagIDs)
	})
}

// Delete removes a recipe by id; ingredient attachments, favorites and cart
// entries cascade.
func (r *RecipeRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("recipe")
	}
	return nil
}

// validateSelections rejects out-of-range amounts and repeated ingredients
// before any row is written.
func validateSelections(items []IngredientSelection) error {
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.Amount < models.MinIngredientAmount || item.Amount > models.MaxIngredientAmount {
			return errs.NewInvalidQuantity(item.Amount)
		}
		if _, ok := seen[item.IngredientID]; ok {
			return errs.NewDuplicateRelation("recipe ingredient")
		}
		seen[item.IngredientID] = struct{}{}
	}
	return nil
}

// attachIngredients verifies every referenced ingredient exists and inserts
// the attachment rows.
func attachIngredients(tx *gorm.DB, recipeID uuid.UUID, items []IngredientSelection) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.IngredientID)
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return errs.NewNotFound("ingredient")
	}
	rows := make([]models.IngredientAmount, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.IngredientAmount{
			RecipeID:     recipeID,
			IngredientID: item.IngredientID,
			Amount:       item.Amount,
		})
	}
	return tx.Create(&rows).Error
}

// replaceTags swaps the recipe's tag set for the given tag ids.
func replaceTags(tx *gorm.DB, recipe *models.Recipe, tagIDs []uuid.UUID) error {
	tags := []models.Tag{}
	if len(tagIDs) > 0 {
		if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return err
		}
		if len(tags) != len(tagIDs) {
			return errs.NewNotFound("tag")
		}
	}
	return tx.Model(recipe).Association("Tags").Replace(&tags)
}
