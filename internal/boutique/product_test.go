package boutique

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductValidate(t *testing.T) {
	base := func() Product {
		return Product{
			Name:            "Summer Floral Dress",
			Kinds:           []OfferingKind{KindSale, KindRent},
			PriceCents:      Cents(9000),
			RentalRateCents: Cents(3000),
			Stock:           3,
		}
	}
	require.NoError(t, base().Validate())

	cases := map[string]func(p *Product){
		"no name":        func(p *Product) { p.Name = "" },
		"no kinds":       func(p *Product) { p.Kinds = nil },
		"unknown kind":   func(p *Product) { p.Kinds = []OfferingKind{"swap"} },
		"duplicate kind": func(p *Product) { p.Kinds = []OfferingKind{KindSale, KindSale} },
		"sale no price":  func(p *Product) { p.PriceCents = nil },
		"zero rate":      func(p *Product) { p.RentalRateCents = Cents(0) },
		"negative stock": func(p *Product) { p.Stock = -1 },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			p := base()
			mut(&p)
			assert.True(t, IsKind(p.Validate(), KindValidation))
		})
	}
}

func TestNormalizeDropsUndeclaredPrices(t *testing.T) {
	p := Product{
		Name:            "  Wedding Tuxedo ",
		Kinds:           []OfferingKind{KindTailoring},
		PriceCents:      Cents(100),
		RentalRateCents: Cents(200),
	}
	p.Normalize()
	assert.Equal(t, "Wedding Tuxedo", p.Name)
	assert.Nil(t, p.PriceCents)
	assert.Nil(t, p.RentalRateCents)
	assert.NotNil(t, p.ImageURLs)
	require.NoError(t, p.Validate())
}

func TestPatchApply(t *testing.T) {
	p := Product{ID: 4, Name: "Gown", Kinds: []OfferingKind{KindSale}, PriceCents: Cents(100), Stock: 1}
	name := "Evening Gown"
	stock := 7
	out := ProductPatch{Name: &name, Stock: &stock}.Apply(p)

	assert.Equal(t, "Evening Gown", out.Name)
	assert.Equal(t, 7, out.Stock)
	assert.Equal(t, int64(100), *out.PriceCents)
	assert.Equal(t, "Gown", p.Name)
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Conflictf("product %d is busy", 3))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))

	var de *Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "product 3 is busy", de.Msg)
}
