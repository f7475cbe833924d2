// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the admin operations.

# Admin Keys

The operator configures a salt (ADMIN_KEY_SALT). The admin key is the
HMAC-SHA256 of AdminScope under that salt:

	adminKey := auth.GenerateAdminKey(auth.AdminScope, salt)
	err := auth.CheckAdmin(r.Header.Get(auth.AdminKeyHeader), salt)

The key is URL-safe base64 without padding. It is never stored; the server
re-derives it and compares in constant time. Run the server with
-print-admin-key to print it.

CheckAdmin returns ErrAdminDisabled when no salt is configured,
ErrMissingAdminKey when the header is empty and ErrInvalidAdminKey when the
key does not match.

# IP Hashing

Price submissions are logged with a salted hash of the client address:

	hash := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
