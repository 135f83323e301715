package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compostlink/compostlink/internal/http/auth"
)

func TestVerifier_Middleware(t *testing.T) {
	v := auth.NewVerifier("test-secret")
	userID := uuid.New()

	valid, err := v.Issue(userID, time.Hour)
	require.NoError(t, err)

	expired, err := v.Issue(userID, -time.Minute)
	require.NoError(t, err)

	foreign, err := auth.NewVerifier("other-secret").Issue(userID, time.Hour)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: userID.String(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "Valid", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "Expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "WrongSecret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "SubjectNotUUID", header: "Bearer " + badSubject, wantStatus: http.StatusUnauthorized},
		{name: "NoExpiry", header: "Bearer " + noExpiry, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got uuid.UUID

			h := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = auth.UserID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, got)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	caller := uuid.New()
	other := uuid.New()
	ctx := auth.WithUser(context.Background(), caller)

	got, err := auth.Resolve(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, caller, got)

	got, err = auth.Resolve(ctx, &caller)
	require.NoError(t, err)
	assert.Equal(t, caller, got)

	_, err = auth.Resolve(ctx, &other)
	assert.ErrorIs(t, err, auth.ErrIdentityMismatch)

	_, err = auth.Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}
