package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodgram/backend/models"
)

func TestFavoriteEndpointLifecycle(t *testing.T) {
	db, handler := withTestServer(t)

	author := newTestUser(t, db, "alice")
	viewer := newTestUser(t, db, "bob")
	recipe := newTestRecipe(t, db, author, "Borscht")

	target := fmt.Sprintf("/recipes/%s/favorite", recipe.ID)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, target, nil, viewer.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var summary recipeSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.ID != recipe.ID || summary.Name != "Borscht" {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	// Second add must be rejected as a duplicate
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, target, nil, viewer.ID))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for duplicate favorite, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodDelete, target, nil, viewer.ID))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodDelete, target, nil, viewer.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after removal, got %d", w.Code)
	}
}

func TestShoppingCartEndpointRejectsUnknownRecipe(t *testing.T) {
	db, handler := withTestServer(t)

	viewer := newTestUser(t, db, "bob")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost,
		"/recipes/00000000-0000-0000-0000-000000000001/shopping_cart", nil, viewer.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown recipe, got %d", w.Code)
	}
}

func TestDownloadShoppingCartDocument(t *testing.T) {
	db, handler := withTestServer(t)

	author := newTestUser(t, db, "alice")
	shopper := newTestUser(t, db, "bob")

	flour := newTestIngredient(t, db, "flour", "g")
	salt := newTestIngredient(t, db, "salt", "g")
	sugar := newTestIngredient(t, db, "sugar", "g")

	bread := newTestRecipe(t, db, author, "Bread")
	cake := newTestRecipe(t, db, author, "Cake")
	for _, row := range []models.IngredientAmount{
		{RecipeID: bread.ID, IngredientID: flour.ID, Amount: 200},
		{RecipeID: bread.ID, IngredientID: salt.ID, Amount: 5},
		{RecipeID: cake.ID, IngredientID: flour.ID, Amount: 100},
		{RecipeID: cake.ID, IngredientID: sugar.ID, Amount: 50},
	} {
		attachment := row
		if err := db.Create(&attachment).Error; err != nil {
			t.Fatalf("failed to attach ingredient: %v", err)
		}
	}
	for _, recipe := range []models.Recipe{bread, cake} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodPost,
			fmt.Sprintf("/recipes/%s/shopping_cart", recipe.ID), nil, shopper.ID))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201 adding to cart, got %d", w.Code)
		}
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodGet, "/recipes/download_shopping_cart", nil, shopper.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="shop_list.txt"` {
		t.Fatalf("unexpected content disposition: %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type: %q", got)
	}

	expected := "Flour (g) - 300\nSalt (g) - 5\nSugar (g) - 50\n"
	if w.Body.String() != expected {
		t.Fatalf("unexpected document:\n%q\nwant:\n%q", w.Body.String(), expected)
	}
}

func TestDownloadShoppingCartRequiresAuth(t *testing.T) {
	_, handler := withTestServer(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	_, handler := withTestServer(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewReader([]byte(`{}`))))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestRecipeCreateUpdateLifecycle(t *testing.T) {
	db, handler := withTestServer(t)

	author := newTestUser(t, db, "alice")
	stranger := newTestUser(t, db, "mallory")
	flour := newTestIngredient(t, db, "flour", "g")
	sugar := newTestIngredient(t, db, "sugar", "g")

	createPayload := map[string]any{
		"name":        "Cake",
		"text":        "bake it",
		"cookingTime": 60,
		"ingredients": []map[string]any{
			{"id": flour.ID, "amount": 200},
		},
	}
	body, _ := json.Marshal(createPayload)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, "/recipes", bytes.NewReader(body), author.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created recipeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if len(created.Ingredients) != 1 || created.Ingredients[0].Amount != 200 {
		t.Fatalf("unexpected ingredients in create response: %+v", created.Ingredients)
	}
	if created.Author.Username != "alice" {
		t.Fatalf("expected author alice, got %q", created.Author.Username)
	}

	updatePayload := map[string]any{
		"name":        "Cake",
		"text":        "bake it longer",
		"cookingTime": 90,
		"ingredients": []map[string]any{
			{"id": sugar.ID, "amount": 5},
		},
	}
	body, _ = json.Marshal(updatePayload)

	// A non-author must not be able to update
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPatch,
		"/recipes/"+created.ID.String(), bytes.NewReader(body), stranger.ID))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for non-author, got %d", w.Code)
	}

	body, _ = json.Marshal(updatePayload)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPatch,
		"/recipes/"+created.ID.String(), bytes.NewReader(body), author.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated recipeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].ID != sugar.ID {
		t.Fatalf("expected the ingredient set to be replaced, got %+v", updated.Ingredients)
	}
	if updated.CookingTime != 90 {
		t.Fatalf("expected cooking time 90, got %d", updated.CookingTime)
	}
}

func TestListRecipesFavoritedFilterRequiresAuth(t *testing.T) {
	_, handler := withTestServer(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes?is_favorited=1", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestCreateRecipeRejectsOutOfRangeAmount(t *testing.T) {
	db, handler := withTestServer(t)

	author := newTestUser(t, db, "alice")
	flour := newTestIngredient(t, db, "flour", "g")

	payload := map[string]any{
		"name":        "Bad",
		"text":        "too much",
		"cookingTime": 10,
		"ingredients": []map[string]any{
			{"id": flour.ID, "amount": 100001},
		},
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, "/recipes", bytes.NewReader(body), author.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}
