package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/identity"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p identity.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// principalFrom returns the caller set by authenticate. The zero Principal
// has no role and fails every access check.
func principalFrom(ctx context.Context) identity.Principal {
	p, _ := ctx.Value(principalKey{}).(identity.Principal)
	return p
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

func (a *api) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			a.writeError(w, r, boutique.Authf("missing bearer token"))
			return
		}
		p, err := a.Identity.Resolve(r.Context(), token)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

// require lets through only callers whose role holds perm.
func (a *api) require(perm boutique.Permission) func(http.Handler) http.Handler {
	roles := boutique.RolesWith(perm)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := principalFrom(r.Context())
			if p.Role == "" {
				a.writeError(w, r, boutique.Authf("authentication required"))
				return
			}
			if !identity.CanAccess(p.Role, roles) {
				a.writeError(w, r, boutique.Forbiddenf("role %s may not %s", p.Role, perm))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
