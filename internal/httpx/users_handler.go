package httpx

import (
	"net/http"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
)

type setRoleReq struct {
	Role boutique.Role `json:"role"`
}

func (a *api) listUsers(w http.ResponseWriter, r *http.Request) {
	us, err := a.Identity.List(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if us == nil {
		us = []boutique.User{}
	}
	writeJSON(w, http.StatusOK, us)
}

func (a *api) setUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req setRoleReq
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	u, err := a.Identity.SetRole(r.Context(), id, req.Role)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
