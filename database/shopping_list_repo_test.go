package database

import (
	"testing"
)

func TestAggregateSumsAcrossCartRecipes(t *testing.T) {
	db := withTestDatabase(t)
	listRepo := NewShoppingListRepo(db)
	relationRepo := NewRelationRepo(db)

	author := createTestUser(t, db, "alice")
	shopper := createTestUser(t, db, "bob")

	flour := createTestIngredient(t, db, "flour", "g")
	salt := createTestIngredient(t, db, "salt", "g")
	sugar := createTestIngredient(t, db, "sugar", "g")

	recipeA := createTestRecipe(t, db, author, "Bread")
	attachTestIngredient(t, db, recipeA, flour, 200)
	attachTestIngredient(t, db, recipeA, salt, 5)

	recipeB := createTestRecipe(t, db, author, "Cake")
	attachTestIngredient(t, db, recipeB, flour, 100)
	attachTestIngredient(t, db, recipeB, sugar, 50)

	if err := relationRepo.AddToCart(shopper.ID, recipeA.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if err := relationRepo.AddToCart(shopper.ID, recipeB.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	totals, err := listRepo.Aggregate(shopper.ID)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	expected := []struct {
		name  string
		unit  string
		total int
	}{
		{"flour", "g", 300},
		{"salt", "g", 5},
		{"sugar", "g", 50},
	}
	if len(totals) != len(expected) {
		t.Fatalf("expected %d entries, got %d: %+v", len(expected), len(totals), totals)
	}
	for i, want := range expected {
		got := totals[i]
		if got.Name != want.name || got.MeasurementUnit != want.unit || got.Total != want.total {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestAggregateEmptyCartYieldsEmptyList(t *testing.T) {
	db := withTestDatabase(t)
	listRepo := NewShoppingListRepo(db)

	shopper := createTestUser(t, db, "bob")

	totals, err := listRepo.Aggregate(shopper.ID)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if len(totals) != 0 {
		t.Fatalf("expected empty aggregation, got %+v", totals)
	}
}

func TestAggregateGroupsByIdentityNotName(t *testing.T) {
	db := withTestDatabase(t)
	listRepo := NewShoppingListRepo(db)
	relationRepo := NewRelationRepo(db)

	author := createTestUser(t, db, "alice")
	shopper := createTestUser(t, db, "bob")

	// Same display name, different catalogue entries: they must stay
	// separate lines.
	saltGrams := createTestIngredient(t, db, "salt", "g")
	saltPinch := createTestIngredient(t, db, "salt", "pinch")

	recipe := createTestRecipe(t, db, author, "Soup")
	attachTestIngredient(t, db, recipe, saltGrams, 10)
	attachTestIngredient(t, db, recipe, saltPinch, 2)

	if err := relationRepo.AddToCart(shopper.ID, recipe.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	totals, err := listRepo.Aggregate(shopper.ID)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected two entries for two identities, got %+v", totals)
	}
	if totals[0].IngredientID == totals[1].IngredientID {
		t.Fatalf("expected distinct ingredient identities, got %+v", totals)
	}
}

func TestAggregateScopedToOneUser(t *testing.T) {
	db := withTestDatabase(t)
	listRepo := NewShoppingListRepo(db)
	relationRepo := NewRelationRepo(db)

	author := createTestUser(t, db, "alice")
	shopper := createTestUser(t, db, "bob")
	other := createTestUser(t, db, "carol")

	flour := createTestIngredient(t, db, "flour", "g")
	recipe := createTestRecipe(t, db, author, "Bread")
	attachTestIngredient(t, db, recipe, flour, 100)

	if err := relationRepo.AddToCart(other.ID, recipe.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	totals, err := listRepo.Aggregate(shopper.ID)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if len(totals) != 0 {
		t.Fatalf("expected no entries for a user with an empty cart, got %+v", totals)
	}
}

func TestAggregateSkipsRecipesWithoutIngredients(t *testing.T) {
	db := withTestDatabase(t)
	listRepo := NewShoppingListRepo(db)
	relationRepo := NewRelationRepo(db)

	author := createTestUser(t, db, "alice")
	shopper := createTestUser(t, db, "bob")

	flour := createTestIngredient(t, db, "flour", "g")
	withIngredients := createTestRecipe(t, db, author, "Bread")
	attachTestIngredient(t, db, withIngredients, flour, 100)
	empty := createTestRecipe(t, db, author, "Water")

	if err := relationRepo.AddToCart(shopper.ID, withIngredients.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if err := relationRepo.AddToCart(shopper.ID, empty.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	totals, err := listRepo.Aggregate(shopper.ID)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if len(totals) != 1 || totals[0].Total != 100 {
		t.Fatalf("expected one entry totalling 100, got %+v", totals)
	}
}
