package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"store-catalog/internal/catalog"
	"store-catalog/internal/middleware"
	"store-catalog/internal/repository"
	"store-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload. Pointer
// fields distinguish an absent value from a zero one.
type CreateProductRequest struct {
	Name       string   `json:"name" validate:"required,max=50"`
	CategoryID int64    `json:"category_id" validate:"required"`
	Price      *float64 `json:"price" validate:"required,gte=0"`
	Quantity   *int     `json:"quantity" validate:"required"`
	Discount   *int64   `json:"discount"`
	Available  *bool    `json:"available"`
	CostPrice  *float64 `json:"cost_price" validate:"required,gte=0"`
}

// UpdateProductRequest represents a partial update payload; every field is
// optional and omitted fields keep their stored values.
type UpdateProductRequest struct {
	Name       *string  `json:"name" validate:"omitempty,max=50"`
	CategoryID *int64   `json:"category_id"`
	Price      *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity   *int     `json:"quantity"`
	Discount   *int64   `json:"discount"`
	Available  *bool    `json:"available"`
	CostPrice  *float64 `json:"cost_price" validate:"omitempty,gte=0"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the public search routes and the admin CRUD routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware, rateLimitMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public search surface
		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware)
			r.Get("/search", h.Search)
			r.Get("/search/{id}", h.Retrieve)
		})

		// Administrative CRUD
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Patch("/{id}", h.PartialUpdate)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseFilter translates the search query parameters into a repository
// filter. Absent parameters impose no constraint.
func parseFilter(r *http.Request) (repository.ProductFilter, error) {
	filter := repository.ProductFilter{}
	query := r.URL.Query()

	if raw := query.Get("category"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filter.CategoryNames = append(filter.CategoryNames, name)
			}
		}
	}

	if raw := query.Get("min_price"); raw != "" {
		minPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid min_price")
		}
		filter.MinPrice = &minPrice
	}

	if raw := query.Get("max_price"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid max_price")
		}
		filter.MaxPrice = &maxPrice
	}

	filter.Name = query.Get("name")

	return filter, nil
}

// respondProductError maps service errors to HTTP status codes
func (h *ProductHandler) respondProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrCategoryNotFound):
		middleware.RespondWithError(w, http.StatusBadRequest, "this category doesn't exist")
	case errors.Is(err, repository.ErrProductAlreadyExists):
		middleware.RespondWithError(w, http.StatusConflict, "a product with the same name already exists")
	case errors.Is(err, catalog.ErrPriceBelowFloor):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Product operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Search handles the public filtered product listing
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.catalogService.SearchProducts(r.Context(), filter)
	if err != nil {
		h.respondProductError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ShapeProducts(OpList, products))
}

// Retrieve handles the public single-product view
func (h *ProductHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		h.respondProductError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ShapeProduct(OpRetrieve, product))
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := service.CreateProductInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      decimal.NewFromFloat(*req.Price),
		Quantity:   *req.Quantity,
		CostPrice:  decimal.NewFromFloat(*req.CostPrice),
		Available:  true,
	}
	if req.Discount != nil {
		in.Discount = *req.Discount
	}
	if req.Available != nil {
		in.Available = *req.Available
	}

	product, err := h.catalogService.CreateProduct(r.Context(), in)
	if err != nil {
		h.respondProductError(w, err)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, ShapeProduct(OpGet, product))
}

// Get handles the administrative single-product view
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		h.respondProductError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ShapeProduct(OpGet, product))
}

// Update handles a full product update; every mutable field is required
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// PartialUpdate handles a partial product update; omitted fields keep their
// stored values
func (h *ProductHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !partial {
		if missing := missingFullUpdateFields(&req); len(missing) > 0 {
			details := map[string]interface{}{"missing_fields": missing}
			middleware.RespondWithErrorDetails(w, http.StatusBadRequest, "validation failed", details)
			return
		}
	}

	in := service.UpdateProductInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Quantity:   req.Quantity,
		Discount:   req.Discount,
		Available:  req.Available,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		in.Price = &price
	}
	if req.CostPrice != nil {
		costPrice := decimal.NewFromFloat(*req.CostPrice)
		in.CostPrice = &costPrice
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, in)
	if err != nil {
		h.respondProductError(w, err)
		return
	}

	op := OpPut
	if partial {
		op = OpPatch
	}
	middleware.RespondWithJSON(w, http.StatusOK, ShapeProduct(op, product))
}

// missingFullUpdateFields lists the fields a full (PUT) update must supply
func missingFullUpdateFields(req *UpdateProductRequest) []string {
	missing := []string{}
	if req.Name == nil {
		missing = append(missing, "name")
	}
	if req.CategoryID == nil {
		missing = append(missing, "category_id")
	}
	if req.Price == nil {
		missing = append(missing, "price")
	}
	if req.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if req.Discount == nil {
		missing = append(missing, "discount")
	}
	if req.Available == nil {
		missing = append(missing, "available")
	}
	if req.CostPrice == nil {
		missing = append(missing, "cost_price")
	}
	return missing
}

// Delete handles product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		h.respondProductError(w, err)
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}
