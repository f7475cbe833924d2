// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// AdminScope is the message the admin key is derived from.
const AdminScope = "pint-index:admin"

// AdminKeyHeader carries the admin key on admin requests.
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrMissingAdminKey = errors.New("missing admin key")
	ErrAdminDisabled   = errors.New("admin operations are disabled")
)

// GenerateAdminKey derives the admin key for a scope from the server salt.
// The same scope and salt always produce the same key, so nothing is stored.
func GenerateAdminKey(scope, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope))
	sum := h.Sum(nil)
	// URL-safe base64, padding trimmed
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks adminKey against the key for scope in constant time.
func ValidateAdminKey(scope, adminKey, salt string) error {
	expected := GenerateAdminKey(scope, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// CheckAdmin validates a key presented for the admin scope. With no salt
// configured admin operations are disabled outright.
func CheckAdmin(adminKey, salt string) error {
	if salt == "" {
		return ErrAdminDisabled
	}
	if adminKey == "" {
		return ErrMissingAdminKey
	}
	return ValidateAdminKey(AdminScope, adminKey, salt)
}

// HashIP creates a one-way hash of an IP address so submissions can be
// correlated in logs without recording the address.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 8 bytes is enough to tell submitters apart
	return hex.EncodeToString(sum[:8])
}
