// Package api contains the credentialed HTTP client for the Don't Panic
// backend. It is the only layer that talks to the network; every failure is
// mapped to a sentinel error at this boundary so callers can branch on the
// failure kind instead of catching generic errors.
package api

import (
	"context"

	"github.com/dontpanic-sante/dpcli/internal/client/models"
)

// Client is the remote surface the rest of the app depends on.
//
// Read operations never panic through and never return partial data: they
// either yield a well-formed result or an error matching one of the
// sentinels in errors.go.
type Client interface {
	// CheckAuth reports the current session state.
	CheckAuth(ctx context.Context) (*models.AuthStatus, error)

	// Login authenticates with email and password. The session cookie is
	// retained by the client for subsequent calls.
	Login(ctx context.Context, email, password string) error

	// Register creates a new account with the default patient role.
	Register(ctx context.Context, email, password string) error

	// Logout terminates the server-side session.
	Logout(ctx context.Context) error

	// ListConversations fetches the conversation list. Success is an HTTP
	// 2xx response whose body parses as a JSON list; anything else is
	// ErrUnavailable.
	ListConversations(ctx context.Context) ([]models.Conversation, error)

	// DeleteConversation deletes one conversation by id; success iff 2xx.
	DeleteConversation(ctx context.Context, id string) error

	// ListOrdonnances fetches the prescription list. An expired session
	// yields ErrUnauthorized so the caller can route to the login page.
	ListOrdonnances(ctx context.Context) ([]models.Ordonnance, error)

	// ScanOrdonnance uploads a prescription scan (image or raw OCR text)
	// and returns the id of the created record.
	ScanOrdonnance(ctx context.Context, scan OrdonnanceScan) (string, error)

	// Close releases client resources.
	Close() error
}

// OrdonnanceScan is the payload of a prescription scan upload. Either Image
// or OCRText must be set; text extraction itself happens server-side.
type OrdonnanceScan struct {
	Image      []byte
	ImageName  string
	OCRText    string
	ValidUntil string // optional, "2006-01-02"
}
