package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/voltkart/storefront/internal/api/middleware"
	appErrors "github.com/voltkart/storefront/internal/errors"
	"github.com/voltkart/storefront/internal/models"
	service "github.com/voltkart/storefront/internal/services"
	"github.com/voltkart/storefront/internal/utils"
	"github.com/voltkart/storefront/internal/utils/response"
)

// multipart forms are parsed with this much memory before spilling to disk
const maxMultipartMemory = 32 << 20

type ProductHandler struct {
	catalog service.CatalogService
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// CreateProduct handles the multipart admin upload: product fields plus 1-3
// image parts under the "images" key.
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			logger.Warn("Invalid multipart form", slog.String("error", err.Error()))
			response.Error(w, appErrors.BadRequestError("Invalid multipart form data"))
			return
		}

		req := &models.CreateProductRequest{
			Name:           r.FormValue("name"),
			Description:    r.FormValue("description"),
			Specifications: r.FormValue("specifications"),
			Price:          utils.FormFloat(r, "price"),
			Discount:       utils.FormFloat(r, "discount"),
			Category:       r.FormValue("category"),
			Brand:          r.FormValue("brand"),
			Stock:          utils.FormInt(r, "stock"),
		}

		for _, header := range r.MultipartForm.File["images"] {

			file, err := header.Open()
			if err != nil {
				logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
				response.Error(w, appErrors.BadRequestError("Invalid multipart form data"))
				return
			}
			defer file.Close()

			req.Images = append(req.Images, models.ImageUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Data:        file,
			})
		}

		result, err := h.catalog.CreateProduct(r.Context(), req)
		if err != nil {
			logger.Error("Error during product creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.String("productId", result.ProductID))
		response.Success(w, http.StatusCreated, result)

	}
}

// QueryProducts serves GET /api/v1/products. With ?id= it returns a single
// record (404 when absent); otherwise a filtered, sorted, paginated list.
func (h *ProductHandler) QueryProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		params := r.URL.Query()

		query := &models.ProductQuery{
			ID:        params.Get("id"),
			Category:  params.Get("category"),
			SortBy:    params.Get("sortBy"),
			SortOrder: params.Get("sortOrder"),
		}
		query.Page, _ = strconv.Atoi(params.Get("page"))
		query.Limit, _ = strconv.Atoi(params.Get("limit"))

		// an explicit id wins; every other parameter is ignored
		if query.ID != "" {

			product, err := h.catalog.GetProduct(r.Context(), query.ID)
			if err != nil {
				logger.Warn("Product lookup failed", slog.String("id", query.ID), slog.String("error", err.Error()))
				response.Error(w, err)
				return
			}

			response.Success(w, http.StatusOK, product)
			return
		}

		products, err := h.catalog.ListProducts(r.Context(), query)
		if err != nil {
			logger.Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)

	}
}

// Schema exposes the product field schema for client-side forms.
func (h *ProductHandler) Schema() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, models.ProductSchema)
	}
}
