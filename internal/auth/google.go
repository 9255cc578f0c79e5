// Package auth verifies Google sign-in credentials and enforces the
// institutional domain allow-list.
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

// AllowedDomains lists the institutional email domains accepted at sign-in.
var AllowedDomains = []string{"funiber.org", "uneatlantico.es"}

// User is the identity extracted from a verified Google credential.
type User struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// ErrDomainNotAllowed is returned for credentials whose email falls outside
// the institutional domains.
var ErrDomainNotAllowed = errors.New("email domain not allowed")

// DomainAllowed reports whether the email belongs to an allowed domain.
func DomainAllowed(email string) bool {
	domain := emailDomain(email)
	if domain == "" {
		return false
	}
	for _, allowed := range AllowedDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// Verifier checks Google ID tokens against the configured OAuth client ID.
type Verifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewVerifier creates a verifier for the given OAuth client ID.
func NewVerifier(clientID string) *Verifier {
	return &Verifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// Verify validates the credential's signature and audience, then applies
// the domain allow-list. It returns the signed-in user on success.
func (v *Verifier) Verify(ctx context.Context, credential string) (*User, error) {
	payload, err := v.validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid credential: %w", err)
	}

	user := userFromClaims(payload.Claims)
	if user.Email == "" {
		return nil, errors.New("credential has no email claim")
	}
	if !DomainAllowed(user.Email) {
		return nil, fmt.Errorf("%w: %s", ErrDomainNotAllowed, emailDomain(user.Email))
	}
	return user, nil
}

// ParseClaims decodes the payload segment of a JWT without verifying the
// signature. Only suitable for display purposes, never for authorization.
func ParseClaims(credential string) (*User, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return nil, errors.New("malformed credential")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode credential payload: %w", err)
	}
	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse credential payload: %w", err)
	}
	return userFromClaims(claims), nil
}

func userFromClaims(claims map[string]any) *User {
	user := &User{}
	if s, ok := claims["name"].(string); ok {
		user.Name = s
	}
	if s, ok := claims["email"].(string); ok {
		user.Email = s
	}
	if s, ok := claims["picture"].(string); ok {
		user.Picture = s
	}
	return user
}
