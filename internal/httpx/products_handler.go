package httpx

import (
	"net/http"
	"strconv"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/catalog"
)

func (a *api) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.Filter{Kind: boutique.OfferingKind(q.Get("kind"))}
	if f.Kind != "" && !f.Kind.Valid() {
		a.writeError(w, r, boutique.Validationf("unknown product type %q", f.Kind))
		return
	}
	if s := q.Get("featured"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			a.writeError(w, r, boutique.Validationf("invalid featured %q", s))
			return
		}
		f.Featured = &b
	}

	ps, err := a.Catalog.List(r.Context(), f)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if ps == nil {
		ps = []boutique.Product{}
	}
	writeJSON(w, http.StatusOK, ps)
}

func (a *api) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	p, err := a.Catalog.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *api) createProduct(w http.ResponseWriter, r *http.Request) {
	var d boutique.ProductDraft
	if err := decodeJSON(r, &d); err != nil {
		a.writeError(w, r, err)
		return
	}
	p, err := a.Catalog.Create(r.Context(), d)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *api) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var patch boutique.ProductPatch
	if err := decodeJSON(r, &patch); err != nil {
		a.writeError(w, r, err)
		return
	}
	p, err := a.Catalog.Update(r.Context(), id, patch)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *api) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.Catalog.Delete(r.Context(), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) reservedDates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	ds, err := a.Rentals.ReservedDates(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.String())
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) productRentals(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	rs, err := a.Rentals.ListByProduct(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if rs == nil {
		rs = []boutique.Reservation{}
	}
	writeJSON(w, http.StatusOK, rs)
}
