package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrNotFound is returned by a Store when no session exists under an ID.
var ErrNotFound = errors.New("session not found")

// Data is everything kept server-side for one browser session: the API token
// bridging the session to bearer auth, plus one-shot flash state consumed by
// the next page render.
type Data struct {
	Token    string              `json:"token,omitempty"`
	Status   string              `json:"status,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
	OldInput map[string]string   `json:"old_input,omitempty"`
}

type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data) error
	Delete(ctx context.Context, id string) error
}

const contextKey = "jobboard.session"

type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	log        *slog.Logger
}

func NewManager(store Store, cookieName string, ttl time.Duration, log *slog.Logger) *Manager {
	return &Manager{store: store, cookieName: cookieName, ttl: ttl, log: log}
}

// Middleware attaches a Session to every request, creating a fresh one when
// no valid cookie is presented, and persists it after the handler runs.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.cookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			m.setCookie(c, id)
		}

		data, err := m.store.Load(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				m.log.Error("Failed to load session", slog.String("error", err.Error()))
			}
			data = &Data{}
		}

		sess := &Session{id: id, data: data, manager: m, gin: c}
		c.Set(contextKey, sess)

		c.Next()

		if sess.dirty {
			if err := m.store.Save(c.Request.Context(), sess.id, sess.data); err != nil {
				m.log.Error("Failed to save session", slog.String("error", err.Error()))
			}
		}
	}
}

func (m *Manager) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, id, int(m.ttl.Seconds()), "/", "", false, true)
}

// FromContext returns the request's session. The session middleware must be
// installed on the route.
func FromContext(c *gin.Context) *Session {
	sess, _ := c.MustGet(contextKey).(*Session)
	return sess
}

type Session struct {
	id      string
	data    *Data
	manager *Manager
	gin     *gin.Context
	dirty   bool
}

func (s *Session) Token() string {
	return s.data.Token
}

func (s *Session) PutToken(token string) {
	s.data.Token = token
	s.dirty = true
}

func (s *Session) ForgetToken() {
	s.data.Token = ""
	s.dirty = true
}

// Regenerate rotates the session ID while keeping its data, defending
// against session fixation after login.
func (s *Session) Regenerate(ctx context.Context) {
	if err := s.manager.store.Delete(ctx, s.id); err != nil && !errors.Is(err, ErrNotFound) {
		s.manager.log.Error("Failed to delete session during regenerate", slog.String("error", err.Error()))
	}
	s.id = uuid.NewString()
	s.manager.setCookie(s.gin, s.id)
	s.dirty = true
}

// Invalidate wipes all session data and rotates the ID.
func (s *Session) Invalidate(ctx context.Context) {
	if err := s.manager.store.Delete(ctx, s.id); err != nil && !errors.Is(err, ErrNotFound) {
		s.manager.log.Error("Failed to delete session during invalidate", slog.String("error", err.Error()))
	}
	s.id = uuid.NewString()
	s.data = &Data{}
	s.manager.setCookie(s.gin, s.id)
	s.dirty = true
}

func (s *Session) FlashStatus(status string) {
	s.data.Status = status
	s.dirty = true
}

func (s *Session) FlashErrors(errs map[string][]string) {
	s.data.Errors = errs
	s.dirty = true
}

func (s *Session) FlashError(field, message string) {
	s.FlashErrors(map[string][]string{field: {message}})
}

func (s *Session) FlashOldInput(input map[string]string) {
	s.data.OldInput = input
	s.dirty = true
}

// PullStatus returns and clears the flashed status message.
func (s *Session) PullStatus() string {
	status := s.data.Status
	if status != "" {
		s.data.Status = ""
		s.dirty = true
	}
	return status
}

func (s *Session) PullErrors() map[string][]string {
	errs := s.data.Errors
	if errs != nil {
		s.data.Errors = nil
		s.dirty = true
	}
	return errs
}

func (s *Session) PullOldInput() map[string]string {
	input := s.data.OldInput
	if input != nil {
		s.data.OldInput = nil
		s.dirty = true
	}
	return input
}
