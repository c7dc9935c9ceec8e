package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"

	"github.com/foodgram/backend/models"
)

func newTestAdmin(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	admin := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "Admin",
		PasswordHash: "hash",
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to create admin %s: %v", username, err)
	}
	return admin
}

func TestListTagsPublic(t *testing.T) {
	db, handler := withTestServer(t)

	tag := models.Tag{Name: "breakfast", Color: "#ff0000", Slug: "breakfast"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tags", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var tags []models.Tag
	if err := json.Unmarshal(w.Body.Bytes(), &tags); err != nil {
		t.Fatalf("failed to decode tags: %v", err)
	}
	if len(tags) != 1 || tags[0].Slug != "breakfast" {
		t.Fatalf("unexpected tag listing: %+v", tags)
	}
}

func TestCreateTagAdminOnly(t *testing.T) {
	db, handler := withTestServer(t)

	regular := newTestUser(t, db, "bob")
	admin := newTestAdmin(t, db, "root")

	payload := []byte(`{"name":"dinner","color":"#00ff00","slug":"dinner"}`)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, "/tags", bytes.NewReader(payload), regular.ID))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for non-admin, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, "/tags", bytes.NewReader(payload), admin.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListIngredientsPrefixFilter(t *testing.T) {
	db, handler := withTestServer(t)

	newTestIngredient(t, db, "salt", "g")
	newTestIngredient(t, db, "salmon", "g")
	newTestIngredient(t, db, "flour", "g")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingredients?name=sal", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var ingredients []models.Ingredient
	if err := json.Unmarshal(w.Body.Bytes(), &ingredients); err != nil {
		t.Fatalf("failed to decode ingredients: %v", err)
	}
	if len(ingredients) != 2 {
		t.Fatalf("expected two prefix matches, got %+v", ingredients)
	}
	for _, ingredient := range ingredients {
		if ingredient.Name != "salt" && ingredient.Name != "salmon" {
			t.Fatalf("unexpected ingredient in prefix listing: %+v", ingredient)
		}
	}
}

func TestImportIngredients(t *testing.T) {
	db, handler := withTestServer(t)

	admin := newTestAdmin(t, db, "root")

	payload := []byte(`[
		{"name":"flour","measurementUnit":"g"},
		{"name":"salt","measurementUnit":"g"}
	]`)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, "/ingredients/import", bytes.NewReader(payload), admin.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&models.Ingredient{}).Count(&count).Error; err != nil {
		t.Fatalf("count ingredients: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two imported rows, got %d", count)
	}
}

func TestImportIngredientsRejectsEmptyBatch(t *testing.T) {
	db, handler := withTestServer(t)

	admin := newTestAdmin(t, db, "root")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, "/ingredients/import", bytes.NewReader([]byte(`[]`)), admin.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for empty batch, got %d", w.Code)
	}
}
