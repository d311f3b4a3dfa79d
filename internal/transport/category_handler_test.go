package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"store-catalog/internal/domain"
	"store-catalog/internal/repository"
	"store-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCategoryRouter(svc service.CatalogService) *chi.Mux {
	router := chi.NewRouter()
	handler := NewCategoryHandler(svc, zap.NewNop())
	handler.RegisterRoutes(router, passthroughMiddleware, passthroughMiddleware)
	return router
}

func TestListCategories(t *testing.T) {
	svc := &mockCatalogService{
		listCategoriesFn: func(ctx context.Context) ([]*domain.Category, error) {
			return []*domain.Category{
				{ID: 1, Name: "Kitchen", CreatedAt: time.Now()},
				{ID: 2, Name: "Garden", CreatedAt: time.Now()},
			}, nil
		},
	}
	router := newCategoryRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/api/categories/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "Kitchen", results[0]["name"])
	assert.Equal(t, 2.0, results[1]["id"])
	// The category shape carries no timestamps.
	assert.NotContains(t, results[0], "created_at")
}

func TestCreateCategory(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		serviceErr error
		wantStatus int
	}{
		{"valid category", map[string]interface{}{"name": "Kitchen"}, nil, http.StatusCreated},
		{"duplicate name", map[string]interface{}{"name": "Kitchen"}, repository.ErrCategoryAlreadyExists, http.StatusConflict},
		{"missing name", map[string]interface{}{}, nil, http.StatusBadRequest},
		{"name too long", map[string]interface{}{
			"name": "An exceedingly verbose category name that keeps going and going well past the one hundred character column limit",
		}, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCatalogService{
				createCategoryFn: func(ctx context.Context, name string) (*domain.Category, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &domain.Category{ID: 5, Name: name, CreatedAt: time.Now()}, nil
				},
			}
			router := newCategoryRouter(svc)

			w := doJSON(t, router, http.MethodPost, "/api/categories/", tt.body)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				m := decodeBody(t, w)
				assert.Equal(t, 5.0, m["id"])
				assert.Equal(t, "Kitchen", m["name"])
			}
		})
	}
}

func TestGetCategory(t *testing.T) {
	svc := &mockCatalogService{
		getCategoryFn: func(ctx context.Context, id int64) (*domain.Category, error) {
			if id != 5 {
				return nil, repository.ErrCategoryNotFound
			}
			return &domain.Category{ID: 5, Name: "Kitchen", CreatedAt: time.Now()}, nil
		},
	}
	router := newCategoryRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/api/categories/5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kitchen", decodeBody(t, w)["name"])

	w = doJSON(t, router, http.MethodGet, "/api/categories/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/categories/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategory(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"unused category", nil, http.StatusNoContent},
		{"missing category", repository.ErrCategoryNotFound, http.StatusNotFound},
		{"category still referenced", repository.ErrCategoryInUse, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCatalogService{
				deleteCategoryFn: func(ctx context.Context, id int64) error {
					return tt.serviceErr
				},
			}
			router := newCategoryRouter(svc)

			w := doJSON(t, router, http.MethodDelete, "/api/categories/5", nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
