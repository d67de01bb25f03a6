// Package session stores per-browser state (the logged-in user and pending
// flash notices) server-side, keyed by an opaque id kept in a cookie.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Store.Load for unknown or expired ids.
var ErrNotFound = errors.New("session not found")

// FlashKind is the category of a flash notice.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// User is the identity kept after login.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Data is the state stored under one session id.
type Data struct {
	User    *User   `json:"user,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

// IsEmpty reports whether there is nothing worth persisting.
func (d *Data) IsEmpty() bool {
	return d == nil || (d.User == nil && len(d.Flashes) == 0)
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	if d == nil {
		return &Data{}
	}
	out := &Data{}
	if d.User != nil {
		u := *d.User
		out.User = &u
	}
	if len(d.Flashes) > 0 {
		out.Flashes = append([]Flash(nil), d.Flashes...)
	}
	return out
}

// Store persists session data.
type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}
