package models

import (
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the catalog document. The validate tags mirror the store-level
// schema exactly; they are enforced as the final gate before every insert.
type Product struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required,max=100"`
	Description    string             `json:"description" bson:"description" validate:"required,max=2000"`
	Specifications string             `json:"specifications,omitempty" bson:"specifications,omitempty" validate:"omitempty,max=1000"`
	Price          float64            `json:"price" bson:"price" validate:"gte=0"`
	Discount       float64            `json:"discount" bson:"discount" validate:"gte=0,lte=100"`
	Category       string             `json:"category" bson:"category" validate:"required,category"`
	Brand          string             `json:"brand,omitempty" bson:"brand,omitempty" validate:"omitempty,max=50"`
	Stock          int                `json:"stock" bson:"stock" validate:"gte=0"`
	Images         []string           `json:"images" bson:"images" validate:"required,min=1,max=3"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Categories is the fixed enumeration shared by validation and listing UIs.
var Categories = []string{
	"heating-appliances",
	"cooling-appliances",
	"home-entertainment",
	"refrigeration-appliances",
	"laundry-appliances",
	"kitchen-appliances",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}

	return false
}

// ImageUpload is one raw image part of a multipart create request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

type CreateProductRequest struct {
	Name           string
	Description    string
	Specifications string
	Price          float64
	Discount       float64
	Category       string
	Brand          string
	Stock          int
	Images         []ImageUpload
}

type CreateProductResult struct {
	ProductID string `json:"productId"`
	Message   string `json:"message"`
}

const (
	DefaultPage      = 1
	DefaultPageSize  = 10
	DefaultSortField = "createdAt"
)

// ProductQuery carries the parsed list parameters. When ID is set every
// other field is ignored.
type ProductQuery struct {
	ID        string
	Category  string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (q *ProductQuery) ApplyDefaults() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if _, ok := ProductSchema[q.SortBy]; !ok && q.SortBy != "createdAt" && q.SortBy != "updatedAt" {
		q.SortBy = DefaultSortField
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
}

func (q *ProductQuery) Offset() int64 {
	return int64((q.Page - 1) * q.Limit)
}

// SortDirection maps the order keyword onto the store's 1/-1 convention.
func (q *ProductQuery) SortDirection() int {
	if q.SortOrder == "asc" {
		return 1
	}

	return -1
}
