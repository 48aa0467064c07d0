package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/logger"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "abc", &Data{Token: "tok"}))
	data, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "tok", data.Token)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short", &Data{Token: "tok"}))
	time.Sleep(20 * time.Millisecond)

	_, err := store.Load(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func newSessionEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	manager := NewManager(NewMemoryStore(time.Hour), "jobboard_session", time.Hour, logger.New("test"))

	engine := gin.New()
	engine.GET("/probe", manager.Middleware(), handler)
	return engine
}

func cookieValue(t *testing.T, resp *httptest.ResponseRecorder, name string) string {
	t.Helper()
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func TestMiddlewareIssuesCookie(t *testing.T) {
	engine := newSessionEngine(func(c *gin.Context) {
		require.NotNil(t, FromContext(c))
		c.Status(http.StatusNoContent)
	})

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.NotEmpty(t, cookieValue(t, resp, "jobboard_session"))
}

func TestFlashIsOneShot(t *testing.T) {
	engine := newSessionEngine(func(c *gin.Context) {
		sess := FromContext(c)
		switch c.Query("step") {
		case "flash":
			sess.FlashStatus("Logged in successfully.")
			sess.FlashErrors(map[string][]string{"email": {"Invalid credentials provided."}})
			sess.FlashOldInput(map[string]string{"email": "user@example.com"})
			c.Status(http.StatusNoContent)
		default:
			c.JSON(http.StatusOK, gin.H{
				"status": sess.PullStatus(),
				"errors": sess.PullErrors(),
				"old":    sess.PullOldInput(),
			})
		}
	})

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/probe?step=flash", nil))
	id := cookieValue(t, resp, "jobboard_session")
	require.NotEmpty(t, id)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "jobboard_session", Value: id})
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	assert.Contains(t, resp.Body.String(), "Logged in successfully.")
	assert.Contains(t, resp.Body.String(), "Invalid credentials provided.")
	assert.Contains(t, resp.Body.String(), "user@example.com")

	// A second pull finds nothing.
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "jobboard_session", Value: id})
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	assert.NotContains(t, resp.Body.String(), "Logged in successfully.")
	assert.NotContains(t, resp.Body.String(), "user@example.com")
}

func TestTokenSurvivesAcrossRequests(t *testing.T) {
	engine := newSessionEngine(func(c *gin.Context) {
		sess := FromContext(c)
		if c.Query("put") != "" {
			sess.PutToken(c.Query("put"))
		}
		c.String(http.StatusOK, sess.Token())
	})

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/probe?put=tok-9", nil))
	id := cookieValue(t, resp, "jobboard_session")

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "jobboard_session", Value: id})
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	assert.Equal(t, "tok-9", resp.Body.String())
}

func TestRegenerateRotatesIDKeepsToken(t *testing.T) {
	engine := newSessionEngine(func(c *gin.Context) {
		sess := FromContext(c)
		if c.Query("regen") != "" {
			sess.PutToken("keep-me")
			sess.Regenerate(c.Request.Context())
		}
		c.String(http.StatusOK, sess.Token())
	})

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/probe?regen=1", nil))

	cookies := resp.Result().Cookies()
	// The fresh-session cookie and the regenerated one.
	require.GreaterOrEqual(t, len(cookies), 2)
	newID := cookies[len(cookies)-1].Value
	assert.NotEqual(t, cookies[0].Value, newID)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "jobboard_session", Value: newID})
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	assert.Equal(t, "keep-me", resp.Body.String())
}

func TestInvalidateClearsData(t *testing.T) {
	engine := newSessionEngine(func(c *gin.Context) {
		sess := FromContext(c)
		if c.Query("kill") != "" {
			sess.PutToken("doomed")
			sess.Invalidate(c.Request.Context())
		}
		c.String(http.StatusOK, sess.Token())
	})

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/probe?kill=1", nil))
	assert.Equal(t, "", resp.Body.String())
}
