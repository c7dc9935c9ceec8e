package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bounds for an IngredientAmount.Amount value.
const (
	MinIngredientAmount = 1
	MaxIngredientAmount = 100000
)

// Recipe is a published dish. Only the author (or an admin) may mutate it;
// deleting it cascades its ingredient attachments, favorites and cart entries.
type Recipe struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	AuthorID    uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" db:"name" gorm:"type:varchar(200);not null"`
	Image       string    `json:"image" db:"image" gorm:"type:text"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cookingTime" db:"cooking_time" gorm:"not null;default:1;check:chk_recipes_cooking_time,cooking_time >= 1"`
	Created     time.Time `json:"created" db:"created" gorm:"not null;autoCreateTime;index"`

	Author      User               `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []IngredientAmount `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientAmount attaches one ingredient with a quantity to one recipe.
// A recipe lists a given ingredient at most once; the attachment set is
// replaced wholesale on recipe update.
type IngredientAmount struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	RecipeID     uuid.UUID `json:"recipeId" db:"recipe_id" gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uuid.UUID `json:"ingredientId" db:"ingredient_id" gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int       `json:"amount" db:"amount" gorm:"not null;check:chk_ingredient_amount_range,amount >= 1 AND amount <= 100000"`

	Ingredient Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;references:ID;constraint:OnDelete:CASCADE"`
}

func (a *IngredientAmount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
