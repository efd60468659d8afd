package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad1tya-dev/BiteMe/models"
)

func TestRegisterAndLogin(t *testing.T) {
	auth := &AuthService{Store: newTestStore(t)}
	ctx := context.Background()

	token, user, err := auth.Register(ctx, "jo@example.com", "hunter2", "Jo")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jo@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotZero(t, user.ID)

	token, user, err = auth.Login(ctx, "jo@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Jo", user.Name)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := &AuthService{Store: newTestStore(t)}
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "jo@example.com", "hunter2", "Jo")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "jo@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	auth := &AuthService{Store: s}
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "jo@example.com", "hunter2", "Jo")
	require.NoError(t, err)

	_, _, err = auth.Register(ctx, "jo@example.com", "other", "Josephine")
	assert.ErrorIs(t, err, ErrConflict)

	// The failed attempt must not have grown the users collection.
	err = s.View(ctx, func(doc *models.Document) error {
		assert.Len(t, doc.Users, 1)
		return nil
	})
	require.NoError(t, err)
}

// Email uniqueness is an exact, case-sensitive comparison. Whether that is
// the desired behavior is undecided; this test pins the current one.
func TestRegisterEmailCaseSensitive(t *testing.T) {
	auth := &AuthService{Store: newTestStore(t)}
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "Jo@Example.com", "hunter2", "Jo")
	require.NoError(t, err)

	_, _, err = auth.Register(ctx, "jo@example.com", "hunter2", "Jo")
	assert.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	auth := &AuthService{Store: newTestStore(t)}
	ctx := context.Background()

	tests := []struct {
		name                  string
		email, password, user string
	}{
		{"missing email", "", "pw", "Jo"},
		{"missing password", "jo@example.com", "", "Jo"},
		{"missing name", "jo@example.com", "pw", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := auth.Register(ctx, tt.email, tt.password, tt.user)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

// The sanitized user view must never carry the password, not even as an
// empty JSON field.
func TestSanitizedUserOmitsPassword(t *testing.T) {
	auth := &AuthService{Store: newTestStore(t)}

	_, user, err := auth.Register(context.Background(), "jo@example.com", "hunter2", "Jo")
	require.NoError(t, err)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "hunter2")
}

func TestTokenRoundTrip(t *testing.T) {
	token := IssueToken(42)
	id, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestParseTokenMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!!"},
		{"no separator", "NDI="},        // "42"
		{"non-numeric id", "YWJjOjE="},  // "abc:1"
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestResolveToken(t *testing.T) {
	auth := &AuthService{Store: newTestStore(t)}
	ctx := context.Background()

	token, registered, err := auth.Register(ctx, "jo@example.com", "hunter2", "Jo")
	require.NoError(t, err)

	user, err := auth.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered, user)

	_, err = auth.ResolveToken(ctx, IssueToken(999))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
