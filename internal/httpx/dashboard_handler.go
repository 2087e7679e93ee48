package httpx

import (
	"net/http"
	"strconv"

	"github.com/ariefcatur/boutique-orders/internal/redisx"
	"github.com/ariefcatur/boutique-orders/internal/seed"
)

func (a *api) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	s, err := a.Reporting.DashboardSummary(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *api) notifications(w http.ResponseWriter, r *http.Request) {
	if a.Inbox == nil {
		writeJSON(w, http.StatusOK, []redisx.Notification{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	ns, err := a.Inbox.Recent(r.Context(), principalFrom(r.Context()).UserID, limit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

func (a *api) siteContent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, seed.Content)
}
