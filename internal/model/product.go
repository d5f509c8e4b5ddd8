package model

import (
	"encoding/xml"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry.
type Product struct {
	XMLName     xml.Name        `json:"-" gorm:"-" xml:"product"`
	ID          int             `json:"id" xml:"id" gorm:"primaryKey;autoIncrement:false"`
	SKU         string          `json:"sku" xml:"sku" gorm:"size:64;uniqueIndex;not null"`
	Name        string          `json:"name" xml:"name" gorm:"size:255;not null"`
	Description string          `json:"description" xml:"description" gorm:"size:1024"`
	Price       decimal.Decimal `json:"price" xml:"price" gorm:"type:decimal(12,2);not null"`
	Category    string          `json:"category" xml:"category" gorm:"size:128;index"`
	Stock       int             `json:"stock" xml:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"createdAt" xml:"-" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time       `json:"updatedAt" xml:"-" gorm:"autoUpdateTime:false"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}

// ProductPatch carries the fields of a partial update. Nil means "keep".
type ProductPatch struct {
	SKU         *string
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Stock       *int
}

// Apply merges the supplied fields over p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.SKU != nil {
		p.SKU = *pp.SKU
	}
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
}

// NewProduct carries the fields of a create request.
type NewProduct struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
}

// Pagination describes one page of the catalog.
type Pagination struct {
	Page       int `json:"page" xml:"page"`
	Limit      int `json:"limit" xml:"limit"`
	Total      int `json:"total" xml:"total"`
	TotalPages int `json:"totalPages" xml:"totalPages"`
}
