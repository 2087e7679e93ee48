package identity

import (
	"testing"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	tk := NewTokens("secret", time.Hour, "boutique")
	tok, exp, err := tk.Issue(boutique.User{ID: 3, Role: boutique.RoleEmployee})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	p, err := tk.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: 3, Role: boutique.RoleEmployee}, p)
}

func TestTokensRejectExpired(t *testing.T) {
	tk := NewTokens("secret", time.Hour, "boutique")
	issued := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	tk.now = func() time.Time { return issued }
	tok, _, err := tk.Issue(boutique.User{ID: 3, Role: boutique.RoleCustomer})
	require.NoError(t, err)

	tk.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = tk.Parse(tok)
	assert.True(t, boutique.IsKind(err, boutique.KindAuth))
	assert.Contains(t, err.Error(), "expired")
}

func TestTokensRejectForeignSignatureAndIssuer(t *testing.T) {
	tok, _, err := NewTokens("secret", time.Hour, "boutique").Issue(boutique.User{ID: 1, Role: boutique.RoleOwner})
	require.NoError(t, err)

	_, err = NewTokens("other", time.Hour, "boutique").Parse(tok)
	assert.True(t, boutique.IsKind(err, boutique.KindAuth))

	_, err = NewTokens("secret", time.Hour, "elsewhere").Parse(tok)
	assert.True(t, boutique.IsKind(err, boutique.KindAuth))

	_, err = NewTokens("secret", time.Hour, "boutique").Parse("not.a.token")
	assert.True(t, boutique.IsKind(err, boutique.KindAuth))
}
