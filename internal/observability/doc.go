// Package observability provides structured logging for the Legal Tech API.
//
// The process logger is built once at startup and injected into every
// component. Passwords, password digests and credentials are never logged.
package observability
