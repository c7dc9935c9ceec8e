package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
)

// RelationRepo guards the favorite, shopping-cart and follow relations:
// at-most-once semantics per pair, no self-follows. Every add runs its
// existence check and insert in one transaction; the unique indexes on the
// underlying tables settle races between concurrent adds.
type RelationRepo struct {
	db *gorm.DB
}

func NewRelationRepo(db *gorm.DB) *RelationRepo {
	return &RelationRepo{db}
}

// AddFavorite creates a favorite for (user, recipe) or fails with a
// duplicate-relation error.
func (r *RelationRepo) AddFavorite(userID, recipeID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.NewDuplicateRelation("favorite")
		}
		err := tx.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
		if isDuplicateKey(err) {
			return errs.NewDuplicateRelation("favorite")
		}
		return err
	})
}

// RemoveFavorite deletes the favorite for (user, recipe) or fails with not found.
func (r *RelationRepo) RemoveFavorite(userID, recipeID uuid.UUID) error {
	result := r.db.
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("favorite")
	}
	return nil
}

// AddToCart creates a cart entry for (user, recipe) or fails with a
// duplicate-relation error.
func (r *RelationRepo) AddToCart(userID, recipeID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ShoppingCart{}).
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.NewDuplicateRelation("shopping cart entry")
		}
		err := tx.Create(&models.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
		if isDuplicateKey(err) {
			return errs.NewDuplicateRelation("shopping cart entry")
		}
		return err
	})
}

// RemoveFromCart deletes the cart entry for (user, recipe) or fails with not found.
func (r *RelationRepo) RemoveFromCart(userID, recipeID uuid.UUID) error {
	result := r.db.
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("shopping cart entry")
	}
	return nil
}

// Follow subscribes user to author. Self-follows are rejected before the
// transaction is opened.
func (r *RelationRepo) Follow(userID, authorID uuid.UUID) error {
	if userID == authorID {
		return errs.NewSelfFollow()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", userID, authorID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.NewDuplicateRelation("follow")
		}
		err := tx.Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error
		if isDuplicateKey(err) {
			return errs.NewDuplicateRelation("follow")
		}
		return err
	})
}

// Unfollow deletes the subscription from user to author or fails with not found.
func (r *RelationRepo) Unfollow(userID, authorID uuid.UUID) error {
	result := r.db.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("follow")
	}
	return nil
}

// Subscriptions returns the follows of a user with the followed authors preloaded.
func (r *RelationRepo) Subscriptions(userID uuid.UUID) ([]*models.Follow, error) {
	var follows []*models.Follow
	err := r.db.
		Preload("Author").
		Where("user_id = ?", userID).
		Find(&follows).Error
	return follows, err
}

// FavoriteRecipeIDs returns the set of recipe ids the user has favorited.
func (r *RelationRepo) FavoriteRecipeIDs(userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return r.recipeIDSet(&models.Favorite{}, userID)
}

// CartRecipeIDs returns the set of recipe ids in the user's shopping cart.
func (r *RelationRepo) CartRecipeIDs(userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return r.recipeIDSet(&models.ShoppingCart{}, userID)
}

func (r *RelationRepo) recipeIDSet(model any, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	err := r.db.Model(model).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// FollowedAuthorIDs returns the set of author ids the user subscribes to.
func (r *RelationRepo) FollowedAuthorIDs(userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// IsFollowing reports whether user subscribes to author.
func (r *RelationRepo) IsFollowing(userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// isDuplicateKey recognizes unique-constraint violations from both the
// postgres and sqlite drivers.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
