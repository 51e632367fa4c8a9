package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldSpec describes one product field: the single source of truth consumed
// by the create operation's schema gate and served to client-side forms.
type FieldSpec struct {
	Type      string   `json:"type"`
	Required  bool     `json:"required"`
	MaxLength int      `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Integer   bool     `json:"integer,omitempty"`
	MinItems  int      `json:"minItems,omitempty"`
	MaxItems  int      `json:"maxItems,omitempty"`
	Enum      []string `json:"enum,omitempty"`
}

func f64(v float64) *float64 { return &v }

var ProductSchema = map[string]FieldSpec{
	"name":           {Type: "string", Required: true, MaxLength: 100},
	"description":    {Type: "string", Required: true, MaxLength: 2000},
	"specifications": {Type: "string", MaxLength: 1000},
	"price":          {Type: "number", Required: true, Min: f64(0)},
	"discount":       {Type: "number", Min: f64(0), Max: f64(100)},
	"category":       {Type: "string", Required: true, Enum: Categories},
	"brand":          {Type: "string", MaxLength: 50},
	"stock":          {Type: "number", Required: true, Min: f64(0), Integer: true},
	"images":         {Type: "array", Required: true, MinItems: 1, MaxItems: 3},
}

// per-field messages matching the store's own wording
var fieldMessages = map[string]string{
	"Name.required":        "Product name is required",
	"Name.max":             "Product name cannot exceed 100 characters",
	"Description.required": "Product description is required",
	"Description.max":      "Description cannot exceed 2000 characters",
	"Specifications.max":   "Specifications cannot exceed 1000 characters",
	"Price.gte":            "Price cannot be negative",
	"Discount.gte":         "Discount cannot be negative",
	"Discount.lte":         "Discount cannot exceed 100%",
	"Category.required":    "Category is required",
	"Brand.max":            "Brand name cannot exceed 50 characters",
	"Stock.gte":            "Stock cannot be negative",
	"Images.required":      "At least one image is required",
	"Images.min":           "At least one image is required",
	"Images.max":           "Images cannot exceed 3 entries",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// enum membership for the category field
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return IsValidCategory(fl.Field().String())
	})

	return v
}

// ValidateProduct runs the schema gate and returns one message per failing
// field, nil when the document is valid.
func ValidateProduct(p *Product) []string {

	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var msgs []string

	for _, fieldErr := range validationErrs {

		if fieldErr.Tag() == "category" {
			msgs = append(msgs, fmt.Sprintf("%s is not a valid category", fieldErr.Value()))
			continue
		}

		key := fieldErr.Field() + "." + fieldErr.Tag()
		if msg, ok := fieldMessages[key]; ok {
			msgs = append(msgs, msg)
			continue
		}

		msgs = append(msgs, fmt.Sprintf("Field %s is invalid: %s=%s", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param()))
	}

	return msgs
}
