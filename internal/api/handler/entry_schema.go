package handler

import (
	"strings"

	"github.com/brandbook/entries-api/internal/core/domain"
)

type entryFieldsRequest struct {
	Name         string `json:"name"          validate:"required,min=2,max=255"`
	AboutBrand   string `json:"about_brand"   validate:"omitempty,min=5,max=255"`
	AboutProduct string `json:"about_product" validate:"omitempty,min=5,max=1024"`
	BrandImage   string `json:"brand_image"   validate:"omitempty,url"`
	ProductImage string `json:"product_image" validate:"omitempty,url"`
	ProductName  string `json:"product_name"  validate:"max=255"`
}

type createEntryRequest struct {
	entryFieldsRequest
}

type updateEntryRequest struct {
	ID string `json:"id" validate:"required"`
	entryFieldsRequest
}

type deleteEntryRequest struct {
	ID string `json:"id" validate:"required"`
}

func (r entryFieldsRequest) toFields() domain.EntryFields {
	return domain.EntryFields{
		Name:         r.Name,
		AboutBrand:   r.AboutBrand,
		AboutProduct: r.AboutProduct,
		BrandImage:   r.BrandImage,
		ProductImage: r.ProductImage,
		ProductName:  r.ProductName,
	}
}

// trim strips surrounding whitespace so length rules apply to what is stored.
func (r *entryFieldsRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.AboutBrand = strings.TrimSpace(r.AboutBrand)
	r.AboutProduct = strings.TrimSpace(r.AboutProduct)
	r.BrandImage = strings.TrimSpace(r.BrandImage)
	r.ProductImage = strings.TrimSpace(r.ProductImage)
	r.ProductName = strings.TrimSpace(r.ProductName)
}
