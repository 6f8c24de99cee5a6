package users

import (
	"errors"
	"strings"
)

// ErrMissingEmail indicates an authenticated identity without a usable email.
var ErrMissingEmail = errors.New("users: authenticated identity requires an email")

// Identity is the tagged caller identity consumed by Resolve. Anonymous and
// authenticated callers are distinct constructions, not a nullable email.
type Identity struct {
	authenticated bool
	email         string
	displayName   string
}

// AnonymousIdentity marks the caller as a guest.
func AnonymousIdentity() Identity {
	return Identity{}
}

// AuthenticatedIdentity marks the caller as a verified account holder.
func AuthenticatedIdentity(email, displayName string) (Identity, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return Identity{}, ErrMissingEmail
	}
	return Identity{
		authenticated: true,
		email:         normalizedEmail,
		displayName:   strings.TrimSpace(displayName),
	}, nil
}

// Authenticated reports whether the identity carries a verified account.
func (i Identity) Authenticated() bool {
	return i.authenticated
}

// Email returns the verified email; empty for anonymous identities.
func (i Identity) Email() string {
	return i.email
}

// DisplayName returns the provider-supplied display name, when present.
func (i Identity) DisplayName() string {
	return i.displayName
}
