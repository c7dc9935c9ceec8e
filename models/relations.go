package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite bookmarks a recipe for a user. At most one row per (user, recipe).
type Favorite struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID   uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`
	RecipeID uuid.UUID `json:"recipeId" db:"recipe_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`

	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// ShoppingCart marks a recipe as part of a user's working set for the
// shopping-list aggregation. At most one row per (user, recipe).
type ShoppingCart struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID   uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_shopping_carts_user_recipe"`
	RecipeID uuid.UUID `json:"recipeId" db:"recipe_id" gorm:"type:uuid;not null;uniqueIndex:idx_shopping_carts_user_recipe"`

	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (c *ShoppingCart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Follow is a directed subscription from UserID to AuthorID. Self-follows are
// rejected in the repository layer and by the schema CHECK constraint.
type Follow struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID   uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_follows_user_author;check:chk_follows_no_self,user_id <> author_id"`
	AuthorID uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;uniqueIndex:idx_follows_user_author"`

	User   User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// All returns every model registered for migration, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&IngredientAmount{},
		&Favorite{},
		&ShoppingCart{},
		&Follow{},
	}
}
