// Package identity is the local stand-in for a managed auth provider. Users
// live in the Record Store; sessions are stateless HS256 bearer tokens.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"homekeeper/internal/pkg/apperr"
	"homekeeper/internal/pkg/jwt"
	"homekeeper/internal/store"
)

const MinPasswordLength = 6

var (
	ErrEmailTaken         = apperr.Validation("A user with this email address has already been registered")
	ErrWeakPassword       = apperr.Validation("Password should be at least 6 characters")
	ErrInvalidCredentials = apperr.Auth("Invalid login credentials")
	ErrInvalidToken       = apperr.Auth("Unauthorized")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type emailIndex struct {
	UserID string `json:"userId"`
}

// Verifier resolves a bearer token to a user id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type Issuer interface {
	IssueToken(userID, email string) (string, error)
}

type Provider interface {
	CreateUser(ctx context.Context, email, password, name string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

// Local implements Provider, Verifier and Issuer.
type Local struct {
	store store.Store
	jwt   *jwt.Service
	cost  int
}

func NewLocal(s store.Store, tokens *jwt.Service) *Local {
	return &Local{store: s, jwt: tokens, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (l *Local) WithHashCost(cost int) *Local {
	l.cost = cost
	return l
}

func (l *Local) CreateUser(ctx context.Context, email, password, name string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("Email is required")
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	_, err := l.store.Get(ctx, emailKey(email))
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrKeyNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return nil, apperr.Upstream(err, "Failed to create user")
	}

	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.PutJSON(ctx, l.store, userKey(u.ID), u); err != nil {
		return nil, err
	}
	if err := store.PutJSON(ctx, l.store, emailKey(email), emailIndex{UserID: u.ID}); err != nil {
		_ = l.store.Delete(ctx, userKey(u.ID))
		return nil, err
	}
	return u, nil
}

func (l *Local) Authenticate(ctx context.Context, email, password string) (*User, error) {
	idx, err := store.GetJSON[emailIndex](ctx, l.store, emailKey(normalizeEmail(email)))
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	u, err := l.User(ctx, idx.UserID)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// User loads a stored user; a dangling email index reads as bad credentials.
func (l *Local) User(ctx context.Context, id string) (*User, error) {
	u, err := store.GetJSON[User](ctx, l.store, userKey(id))
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, ErrInvalidCredentials
	}
	return u, err
}

// UserIDs lists every registered user id.
func (l *Local) UserIDs(ctx context.Context) ([]string, error) {
	entries, err := l.store.Scan(ctx, store.Prefix("identity", "user"))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, store.LastSegment(e.Key))
	}
	return ids, nil
}

func (l *Local) IssueToken(userID, email string) (string, error) {
	token, err := l.jwt.GenerateToken(userID, email)
	if err != nil {
		return "", apperr.Upstream(err, "Failed to issue token")
	}
	return token, nil
}

func (l *Local) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	claims, err := l.jwt.ValidateToken(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userKey(id string) string {
	return store.Key("identity", "user", id)
}

func emailKey(email string) string {
	return store.Key("identity", "email", email)
}
