// Package identity owns user accounts, credentials and role assignment.
package identity

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      boutique.User `json:"user"`
	Role      boutique.Role `json:"role"`
}

// Hasher wraps bcrypt so tests can lower the cost.
type Hasher struct{ Cost int }

func (h Hasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(b), err
}

func (h Hasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type Service struct {
	DB     store.Store
	Tokens *Tokens
	Hasher Hasher
	Now    func() time.Time
}

func NewService(db store.Store, tokens *Tokens, h Hasher) *Service {
	return &Service{DB: db, Tokens: tokens, Hasher: h, Now: time.Now}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer account. The role of a new account is always
// customer; staff roles are granted through SetRole.
func (s *Service) Register(ctx context.Context, name, email, password string) (boutique.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" {
		return boutique.User{}, boutique.Validationf("name is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || !strings.Contains(addr.Address, "@") {
		return boutique.User{}, boutique.Validationf("a valid email is required")
	}
	email = NormalizeEmail(addr.Address)
	if len(password) < minPasswordLen {
		return boutique.User{}, boutique.Validationf("password must be at least %d characters", minPasswordLen)
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return boutique.User{}, err
	}

	u := boutique.User{
		Email:        email,
		Name:         name,
		Role:         boutique.RoleCustomer,
		PasswordHash: hash,
		CreatedAt:    s.Now().UTC(),
	}
	err = s.DB.Update(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetByEmail(ctx, email); err == nil {
			return boutique.Conflictf("an account with this email already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := tx.Users().Insert(ctx, &u); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return boutique.Conflictf("an account with this email already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return boutique.User{}, err
	}
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (Session, error) {
	var u boutique.User
	err := s.DB.View(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetByEmail(ctx, NormalizeEmail(email))
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, boutique.Authf("invalid email or password")
	}
	if err != nil {
		return Session{}, err
	}
	if !s.Hasher.Verify(u.PasswordHash, password) {
		return Session{}, boutique.Authf("invalid email or password")
	}

	token, exp, err := s.Tokens.Issue(u)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, User: u, Role: u.Role}, nil
}

// Resolve verifies a session token and returns the caller with the role the
// account holds now, so a role change takes effect without a new login.
func (s *Service) Resolve(ctx context.Context, token string) (Principal, error) {
	p, err := s.Tokens.Parse(token)
	if err != nil {
		return Principal{}, err
	}
	u, err := s.Get(ctx, p.UserID)
	if boutique.IsKind(err, boutique.KindNotFound) {
		return Principal{}, boutique.Authf("account no longer exists")
	}
	if err != nil {
		return Principal{}, err
	}
	return Principal{UserID: u.ID, Role: u.Role}, nil
}

// SetRole changes a user's role. Owner accounts are never changed, and the
// owner role itself cannot be handed out.
func (s *Service) SetRole(ctx context.Context, userID int64, role boutique.Role) (boutique.User, error) {
	var out boutique.User
	err := s.DB.Update(ctx, func(tx store.Tx) error {
		u, err := tx.Users().Get(ctx, userID)
		if err != nil {
			return userNotFound(err, userID)
		}
		if u.Role == boutique.RoleOwner {
			return boutique.Forbiddenf("the owner role cannot be changed")
		}
		if !role.Valid() {
			return boutique.Validationf("unknown role %q", role)
		}
		if role == boutique.RoleOwner {
			return boutique.Forbiddenf("the owner role cannot be assigned")
		}
		if err := tx.Users().UpdateRole(ctx, userID, role); err != nil {
			return err
		}
		u.Role = role
		out = u
		return nil
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id int64) (boutique.User, error) {
	var u boutique.User
	err := s.DB.View(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().Get(ctx, id)
		return userNotFound(err, id)
	})
	return u, err
}

func (s *Service) List(ctx context.Context) ([]boutique.User, error) {
	var out []boutique.User
	err := s.DB.View(ctx, func(tx store.Tx) error {
		var err error
		out, err = tx.Users().List(ctx)
		return err
	})
	return out, err
}

// CanAccess is the route guard: no role means unauthenticated and is always
// denied; otherwise the role must be one of required.
func CanAccess(role boutique.Role, required []boutique.Role) bool {
	if role == "" {
		return false
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

func userNotFound(err error, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return boutique.NotFoundf("user %d not found", id)
	}
	return err
}
