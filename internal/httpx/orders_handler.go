package httpx

import (
	"net/http"
	"strings"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/orders"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const headerIdempotencyKey = "Idempotency-Key"

type createOrderReq struct {
	Type boutique.OfferingKind `json:"type"`
	orders.OrderDetails
}

type createOrderResp struct {
	Order      boutique.OrderView `json:"order"`
	Idempotent bool               `json:"idempotent"`
}

type setStatusReq struct {
	Status boutique.Status `json:"status"`
}

func (a *api) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	ctx := orders.WithTraceID(r.Context(), middleware.GetReqID(r.Context()))
	p := principalFrom(ctx)

	// Redis is a shortcut only; the ledger stays the source of truth.
	idemKey := strings.TrimSpace(r.Header.Get(headerIdempotencyKey))
	holding := false
	if idemKey != "" && a.Idem != nil {
		id, claimed, err := a.Idem.Claim(ctx, p.UserID, idemKey)
		switch {
		case err != nil:
			a.Log.Warn("idempotency claim failed", zap.Error(err))
		case claimed:
			holding = true
		case id == 0:
			a.writeError(w, r, boutique.Conflictf("an order with this Idempotency-Key is still being placed"))
			return
		default:
			o, err := a.Orders.Get(ctx, id)
			if err == nil {
				writeJSON(w, http.StatusOK, createOrderResp{Order: o, Idempotent: true})
				return
			}
			a.Log.Warn("idempotent order missing", zap.Int64("order_id", id), zap.Error(err))
			holding = true
		}
	}

	o, err := a.Orders.PlaceOrder(ctx, p.UserID, req.Type, req.OrderDetails)
	if err != nil {
		if holding {
			if err := a.Idem.Release(ctx, p.UserID, idemKey); err != nil {
				a.Log.Warn("idempotency release failed", zap.Error(err))
			}
		}
		a.writeError(w, r, err)
		return
	}
	if holding {
		if err := a.Idem.Remember(ctx, p.UserID, idemKey, o.ID); err != nil {
			a.Log.Warn("idempotency remember failed", zap.Error(err))
		}
	}

	view, err := a.Orders.Get(ctx, o.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createOrderResp{Order: view})
}

// listOrders shows staff every order; everyone else only their own.
func (a *api) listOrders(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	q := r.URL.Query()

	var f store.OrderFilter
	var err error
	if f.CustomerID, err = queryID(r, "customerId"); err != nil {
		a.writeError(w, r, err)
		return
	}
	if f.ProductID, err = queryID(r, "productId"); err != nil {
		a.writeError(w, r, err)
		return
	}
	if s := q.Get("status"); s != "" {
		f.Status = boutique.Status(s)
		if !f.Status.Valid() {
			a.writeError(w, r, boutique.Validationf("unknown status %q", s))
			return
		}
	}
	if !p.Role.Can(boutique.PermManageOrders) {
		f.CustomerID = &p.UserID
	}

	os, err := a.Orders.List(r.Context(), f)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if os == nil {
		os = []boutique.OrderView{}
	}
	writeJSON(w, http.StatusOK, os)
}

func (a *api) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	o, err := a.Orders.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	p := principalFrom(r.Context())
	if o.CustomerID != p.UserID && !p.Role.Can(boutique.PermManageOrders) {
		a.writeError(w, r, boutique.Forbiddenf("order %d belongs to another customer", id))
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (a *api) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req setStatusReq
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	ctx := orders.WithTraceID(r.Context(), middleware.GetReqID(r.Context()))
	if _, err := a.Orders.SetStatus(ctx, id, req.Status); err != nil {
		a.writeError(w, r, err)
		return
	}
	view, err := a.Orders.Get(ctx, id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
