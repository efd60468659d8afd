package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ad1tya-dev/BiteMe/models"
	"github.com/ad1tya-dev/BiteMe/store"
)

// AuthService verifies credentials and creates accounts against the users
// collection, and issues the session token the request layer uses to
// identify the acting user.
//
// Passwords are compared as opaque exact-match values and the token is a
// reversible base64 encoding with no integrity guarantee. Both are known
// limitations kept on purpose: hashing or signing here would break the
// deployed data and the clients, and needs a requirements decision first.
type AuthService struct {
	Store *store.Store
}

// Login checks email and password against the users collection. A mismatch
// on either field returns the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.SanitizedUser, error) {
	var user models.User
	err := s.Store.View(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Email == email && u.Password == password {
				user = u
				return nil
			}
		}
		return ErrInvalidCredentials
	})
	if err != nil {
		return "", models.SanitizedUser{}, err
	}
	return IssueToken(user.ID), user.Sanitized(), nil
}

// Register creates a new account with the default "user" role and returns
// the same token + sanitized view as Login. Email uniqueness is an exact,
// case-sensitive comparison; a duplicate fails with ErrConflict and leaves
// the users collection untouched.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, models.SanitizedUser, error) {
	if email == "" || password == "" || name == "" {
		return "", models.SanitizedUser{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	var user models.User
	err := s.Store.Update(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				return fmt.Errorf("%w: user %s", ErrConflict, email)
			}
		}
		user = models.User{
			ID:        store.NextID(doc, models.CollectionUsers),
			Email:     email,
			Password:  password,
			Name:      name,
			Role:      models.RoleUser,
			CreatedAt: time.Now().UTC(),
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return "", models.SanitizedUser{}, err
	}
	return IssueToken(user.ID), user.Sanitized(), nil
}

// ResolveToken maps a session token back to the sanitized user it was issued
// for. Unknown or malformed tokens come back as ErrInvalidCredentials.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (models.SanitizedUser, error) {
	userID, err := ParseToken(token)
	if err != nil {
		return models.SanitizedUser{}, err
	}
	var user models.User
	err = s.Store.View(ctx, func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.ID == userID {
				user = u
				return nil
			}
		}
		return ErrInvalidCredentials
	})
	if err != nil {
		return models.SanitizedUser{}, err
	}
	return user.Sanitized(), nil
}

// IssueToken binds a session token to a user id and its issuance time. The
// encoding is reversible and unsigned: a capability token whose trust
// boundary is the deployment, not a security primitive.
func IssueToken(userID int) string {
	raw := fmt.Sprintf("%d:%d", userID, time.Now().UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ParseToken recovers the user id a token was issued for.
func ParseToken(token string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed token", ErrInvalidCredentials)
	}
	id, _, found := strings.Cut(string(raw), ":")
	if !found {
		return 0, fmt.Errorf("%w: malformed token", ErrInvalidCredentials)
	}
	userID, err := strconv.Atoi(id)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed token", ErrInvalidCredentials)
	}
	return userID, nil
}
