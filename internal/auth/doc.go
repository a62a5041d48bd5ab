// Package auth provides the credential primitives for the Legal Tech API.
//
// This package implements:
//   - Signed, expiring session credentials (HMAC JWT) carrying the subject,
//     tenant and profession of the caller
//   - Salted one-way password hashing (bcrypt)
//
// Credentials are integrity protected, not encrypted. Only identifiers and
// classification values are ever placed in claims.
package auth
