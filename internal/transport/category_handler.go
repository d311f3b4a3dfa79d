package transport

import (
	"errors"
	"net/http"

	"store-catalog/internal/middleware"
	"store-catalog/internal/repository"
	"store-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCategoryRequest represents the category creation payload
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(catalogService service.CatalogService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the category routes. Listing requires any
// authenticated caller; everything else is admin-only.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/", h.List)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Get("/{id}", h.Get)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *CategoryHandler) respondCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
	case errors.Is(err, repository.ErrCategoryAlreadyExists):
		middleware.RespondWithError(w, http.StatusConflict, "a category with the same name already exists")
	case errors.Is(err, repository.ErrCategoryInUse):
		middleware.RespondWithError(w, http.StatusConflict, "category is referenced by existing products")
	default:
		h.logger.Error("Category operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// List handles category listing
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		h.respondCategoryError(w, err)
		return
	}

	shaped := make([]CategoryShape, len(categories))
	for i, c := range categories {
		shaped[i] = ShapeCategory(c)
	}

	middleware.RespondWithJSON(w, http.StatusOK, shaped)
}

// Create handles category creation
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.respondCategoryError(w, err)
		return
	}

	h.logger.Info("Category created", zap.Int64("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, ShapeCategory(category))
}

// Get handles the administrative single-category view
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.catalogService.GetCategory(r.Context(), id)
	if err != nil {
		h.respondCategoryError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ShapeCategory(category))
}

// Delete handles category deletion
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
		h.respondCategoryError(w, err)
		return
	}

	h.logger.Info("Category deleted", zap.Int64("category_id", id))
	w.WriteHeader(http.StatusNoContent)
}
