package boutique

import (
	"strings"
	"time"
)

type OfferingKind string

const (
	KindSale      OfferingKind = "sale"
	KindRent      OfferingKind = "rent"
	KindTailoring OfferingKind = "tailoring"
)

func (k OfferingKind) Valid() bool {
	switch k {
	case KindSale, KindRent, KindTailoring:
		return true
	}
	return false
}

type Product struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Kinds           []OfferingKind `json:"types"`
	PriceCents      *int64         `json:"price_cents,omitempty"`
	RentalRateCents *int64         `json:"rental_rate_cents,omitempty"`
	Stock           int            `json:"stock"`
	ImageURLs       []string       `json:"image_urls"`
	Description     string         `json:"description"`
	Featured        bool           `json:"featured"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (p Product) Offers(k OfferingKind) bool {
	for _, x := range p.Kinds {
		if x == k {
			return true
		}
	}
	return false
}

// Normalize trims text fields and drops prices for kinds the product does
// not declare.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if !p.Offers(KindSale) {
		p.PriceCents = nil
	}
	if !p.Offers(KindRent) {
		p.RentalRateCents = nil
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
}

func (p Product) Validate() error {
	if p.Name == "" {
		return Validationf("product name is required")
	}
	if len(p.Kinds) == 0 {
		return Validationf("at least one offering kind is required")
	}
	seen := make(map[OfferingKind]bool, len(p.Kinds))
	for _, k := range p.Kinds {
		if !k.Valid() {
			return Validationf("unknown offering kind %q", k)
		}
		if seen[k] {
			return Validationf("offering kind %q listed twice", k)
		}
		seen[k] = true
	}
	if seen[KindSale] && (p.PriceCents == nil || *p.PriceCents <= 0) {
		return Validationf("sale products need a positive price")
	}
	if seen[KindRent] && (p.RentalRateCents == nil || *p.RentalRateCents <= 0) {
		return Validationf("rental products need a positive daily rate")
	}
	if p.Stock < 0 {
		return Validationf("stock cannot be negative")
	}
	return nil
}

// ProductDraft is the input for creating a product.
type ProductDraft struct {
	Name            string         `json:"name"`
	Kinds           []OfferingKind `json:"types"`
	PriceCents      *int64         `json:"price_cents"`
	RentalRateCents *int64         `json:"rental_rate_cents"`
	Stock           int            `json:"stock"`
	ImageURLs       []string       `json:"image_urls"`
	Description     string         `json:"description"`
	Featured        bool           `json:"featured"`
}

func (d ProductDraft) Product() Product {
	return Product{
		Name:            d.Name,
		Kinds:           append([]OfferingKind(nil), d.Kinds...),
		PriceCents:      d.PriceCents,
		RentalRateCents: d.RentalRateCents,
		Stock:           d.Stock,
		ImageURLs:       append([]string(nil), d.ImageURLs...),
		Description:     d.Description,
		Featured:        d.Featured,
	}
}

// ProductPatch carries only the fields to change; nil means "keep".
type ProductPatch struct {
	Name            *string         `json:"name"`
	Kinds           *[]OfferingKind `json:"types"`
	PriceCents      *int64          `json:"price_cents"`
	RentalRateCents *int64          `json:"rental_rate_cents"`
	Stock           *int            `json:"stock"`
	ImageURLs       *[]string       `json:"image_urls"`
	Description     *string         `json:"description"`
	Featured        *bool           `json:"featured"`
}

func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Kinds != nil {
		p.Kinds = append([]OfferingKind(nil), (*pp.Kinds)...)
	}
	if pp.PriceCents != nil {
		v := *pp.PriceCents
		p.PriceCents = &v
	}
	if pp.RentalRateCents != nil {
		v := *pp.RentalRateCents
		p.RentalRateCents = &v
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.ImageURLs != nil {
		p.ImageURLs = append([]string(nil), (*pp.ImageURLs)...)
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Featured != nil {
		p.Featured = *pp.Featured
	}
	return p
}

func Cents(v int64) *int64 { return &v }
