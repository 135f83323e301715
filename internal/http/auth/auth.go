// Package auth resolves the calling user from a bearer token.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/compostlink/compostlink/internal/apperr"
	"github.com/compostlink/compostlink/internal/http/respond"
)

var (
	ErrUnauthenticated  = apperr.New(apperr.KindUnauthenticated, "UNAUTHENTICATED", "a valid bearer token is required")
	ErrIdentityMismatch = apperr.New(apperr.KindForbidden, "IDENTITY_MISMATCH", "request body names a different user than the token")
)

type ctxKey struct{}

// Verifier checks HMAC-signed tokens whose subject is the user id.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify returns the user id carried in the token's subject claim.
func (v *Verifier) Verify(token string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", ErrUnauthenticated)
	}

	return id, nil
}

// Issue signs a token for userID valid for ttl.
func (v *Verifier) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(v.secret)
}

// Middleware rejects requests without a valid bearer token and stores the
// caller's id in the request context.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			respond.Error(w, r, ErrUnauthenticated)
			return
		}

		userID, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
	})
}

func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the authenticated caller's id.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// Resolve returns the caller's id, checking that claimed (a user id supplied
// in the request body) matches it when present.
func Resolve(ctx context.Context, claimed *uuid.UUID) (uuid.UUID, error) {
	caller, ok := UserID(ctx)
	if !ok {
		return uuid.Nil, ErrUnauthenticated
	}

	if claimed != nil && *claimed != caller {
		return uuid.Nil, ErrIdentityMismatch
	}

	return caller, nil
}
