package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursereg/internal/pkg/session"
)

const requestContextKey = "requestContext"

// RequestContext is the per-request view of the session: who is logged in
// and which flash notices are pending. Handlers mutate it and call Save
// before writing the response.
type RequestContext struct {
	RequestID string

	id        string
	data      *session.Data
	dirty     bool
	rotate    bool
	destroyed bool
	saver     *SessionMiddleware
}

// User returns the logged-in user or nil.
func (rc *RequestContext) User() *session.User {
	return rc.data.User
}

// UserID returns the logged-in user's id, 0 when anonymous.
func (rc *RequestContext) UserID() int64 {
	if rc.data.User == nil {
		return 0
	}
	return rc.data.User.ID
}

// IsAuthenticated reports whether a user is logged in.
func (rc *RequestContext) IsAuthenticated() bool {
	return rc.data.User != nil
}

// Login stores user in the session and issues a new session id.
func (rc *RequestContext) Login(user *session.User) {
	u := *user
	rc.data.User = &u
	rc.rotate = true
	rc.dirty = true
}

// Destroy drops the session entirely.
func (rc *RequestContext) Destroy() {
	rc.data = &session.Data{}
	rc.destroyed = true
	rc.dirty = true
}

// AddFlash queues a notice for the next rendered page.
func (rc *RequestContext) AddFlash(kind session.FlashKind, message string) {
	rc.data.Flashes = append(rc.data.Flashes, session.Flash{Kind: kind, Message: message})
	rc.dirty = true
}

// TakeFlashes returns and clears the pending notices.
func (rc *RequestContext) TakeFlashes() []session.Flash {
	flashes := rc.data.Flashes
	if len(flashes) > 0 {
		rc.data.Flashes = nil
		rc.dirty = true
	}
	return flashes
}

// Save persists pending changes and sets the cookie. It must run before
// the response headers are written.
func (rc *RequestContext) Save(c *gin.Context) error {
	if rc.saver == nil || !rc.dirty {
		return nil
	}
	return rc.saver.persist(c, rc)
}

// GetRequestContext returns the RequestContext installed by the session
// middleware, or an anonymous one when the middleware did not run.
func GetRequestContext(c *gin.Context) *RequestContext {
	if v, ok := c.Get(requestContextKey); ok {
		if rc, ok := v.(*RequestContext); ok {
			return rc
		}
	}
	rc := &RequestContext{data: &session.Data{}}
	c.Set(requestContextKey, rc)
	return rc
}

// SessionConfig configures the session middleware.
type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// SessionMiddleware resolves the session cookie into a RequestContext.
type SessionMiddleware struct {
	store  session.Store
	cfg    SessionConfig
	logger zerolog.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(store session.Store, cfg SessionConfig, logger zerolog.Logger) *SessionMiddleware {
	return &SessionMiddleware{store: store, cfg: cfg, logger: logger}
}

// Handler loads the session before the route handler and persists any
// change it left unsaved.
func (m *SessionMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := &RequestContext{
			RequestID: GetRequestID(c),
			data:      &session.Data{},
			saver:     m,
		}

		if id, err := c.Cookie(m.cfg.CookieName); err == nil && id != "" {
			data, err := m.store.Load(c.Request.Context(), id)
			switch {
			case err == nil:
				rc.id = id
				rc.data = data
			case errors.Is(err, session.ErrNotFound):
				// Stale cookie; a new id is issued if anything is stored.
			default:
				m.logger.Error().Err(err).Str("requestID", rc.RequestID).Msg("Failed to load session")
			}
		}

		c.Set(requestContextKey, rc)
		c.Next()

		if rc.dirty {
			if err := rc.Save(c); err != nil {
				m.logger.Error().Err(err).Str("requestID", rc.RequestID).Msg("Failed to save session")
			}
		}
	}
}

func (m *SessionMiddleware) persist(c *gin.Context, rc *RequestContext) error {
	ctx := c.Request.Context()

	if rc.id != "" && (rc.rotate || rc.destroyed || rc.data.IsEmpty()) {
		if err := m.store.Delete(ctx, rc.id); err != nil {
			return err
		}
		if rc.destroyed || rc.data.IsEmpty() {
			m.clearCookie(c)
		}
		rc.id = ""
	}
	rc.rotate = false
	rc.destroyed = false

	if rc.data.IsEmpty() {
		rc.dirty = false
		return nil
	}

	if rc.id == "" {
		rc.id = session.NewID()
	}
	if err := m.store.Save(ctx, rc.id, rc.data, m.cfg.MaxAge); err != nil {
		return err
	}
	m.setCookie(c, rc.id)
	rc.dirty = false
	return nil
}

func (m *SessionMiddleware) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, id, int(m.cfg.MaxAge.Seconds()), "/", "", m.cfg.Secure, true)
}

func (m *SessionMiddleware) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, "", -1, "/", "", m.cfg.Secure, true)
}
