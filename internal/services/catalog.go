package service

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/voltkart/storefront/internal/errors"
	"github.com/voltkart/storefront/internal/models"
	repository "github.com/voltkart/storefront/internal/repositories"
	"github.com/voltkart/storefront/pkg/cloudinary"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const DefaultMaxImageBytes = 10 * 1024 * 1024

// CatalogService validates creation and query requests and translates them
// into document-store operations.
type CatalogService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.CreateProductResult, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, query *models.ProductQuery) ([]*models.Product, error)
}

type catalogService struct {
	repo          repository.ProductRepository
	uploader      cloudinary.Uploader
	policy        *bluemonday.Policy
	maxImageBytes int64
}

func NewCatalogService(repo repository.ProductRepository, uploader cloudinary.Uploader, maxImageBytes int64) CatalogService {

	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}

	return &catalogService{
		repo:          repo,
		uploader:      uploader,
		policy:        bluemonday.StrictPolicy(),
		maxImageBytes: maxImageBytes,
	}
}

func (s *catalogService) sanitize(v string) string {
	return strings.TrimSpace(s.policy.Sanitize(v))
}

// CreateProduct runs the creation pipeline: field checks, category check,
// file checks, sequential uploads, schema gate, insert. The first upload
// failure aborts the operation; already-uploaded images are not rolled back.
func (s *catalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.CreateProductResult, error) {

	name := s.sanitize(req.Name)
	description := s.sanitize(req.Description)
	specifications := s.sanitize(req.Specifications)
	brand := s.sanitize(req.Brand)

	if name == "" || description == "" || req.Category == "" || req.Price <= 0 || req.Stock <= 0 {
		return nil, errors.ValidationError("Missing required fields")
	}

	if !models.IsValidCategory(req.Category) {
		return nil, errors.InvalidCategoryError(models.Categories)
	}

	var images []models.ImageUpload

	for _, img := range req.Images {

		if img.Size == 0 {
			continue
		}

		if !strings.Contains(img.ContentType, "image") {
			return nil, errors.FileValidationError("Only image files are allowed")
		}

		if img.Size > s.maxImageBytes {
			return nil, errors.FileValidationError("File size must be less than 10MB")
		}

		images = append(images, img)
	}

	if len(images) == 0 {
		return nil, errors.MissingImageError()
	}

	imageURLs := make([]string, 0, len(images))

	for _, img := range images {

		url, err := s.uploader.UploadImage(ctx, img.Data)
		if err != nil {
			return nil, errors.UploadError("Failed to upload image").WithError(err)
		}

		imageURLs = append(imageURLs, url)
	}

	product := &models.Product{
		Name:           name,
		Description:    description,
		Specifications: specifications,
		Price:          req.Price,
		Discount:       req.Discount,
		Category:       req.Category,
		Brand:          brand,
		Stock:          req.Stock,
		Images:         imageURLs,
	}

	// the store-level schema is the final gate; every failing field is
	// reported, and the uploaded images above stay orphaned on failure
	if fieldErrors := models.ValidateProduct(product); fieldErrors != nil {
		return nil, errors.SchemaValidationError(fieldErrors)
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return &models.CreateProductResult{
		ProductID: product.ID.Hex(),
		Message:   "Product created successfully",
	}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.BadRequestError("Invalid product id").WithError(err)
	}

	product, err := s.repo.GetProductByID(ctx, oid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

// ListProducts returns the requested page; an empty page is a valid result.
func (s *catalogService) ListProducts(ctx context.Context, query *models.ProductQuery) ([]*models.Product, error) {

	query.ApplyDefaults()

	products, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if products == nil {
		products = []*models.Product{}
	}

	return products, nil
}
