package database

import (
	"gorm.io/gorm"

	"github.com/foodgram/backend/models"
)

type Database struct {
	userRepo         *UserRepo
	tagRepo          *TagRepo
	ingredientRepo   *IngredientRepo
	recipeRepo       *RecipeRepo
	relationRepo     *RelationRepo
	shoppingListRepo *ShoppingListRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:         NewUserRepo(db),
		tagRepo:          NewTagRepo(db),
		ingredientRepo:   NewIngredientRepo(db),
		recipeRepo:       NewRecipeRepo(db),
		relationRepo:     NewRelationRepo(db),
		shoppingListRepo: NewShoppingListRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) IngredientRepo() *IngredientRepo {
	return d.ingredientRepo
}

func (d Database) RecipeRepo() *RecipeRepo {
	return d.recipeRepo
}

func (d Database) RelationRepo() *RelationRepo {
	return d.relationRepo
}

func (d Database) ShoppingListRepo() *ShoppingListRepo {
	return d.shoppingListRepo
}

// Migrate creates or updates the schema for every registered model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
