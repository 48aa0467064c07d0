package webui

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/apiclient"
	"jobboard/internal/dtos"
	"jobboard/internal/session"
	"jobboard/internal/validation"
)

// AuthHandler serves the login page and bridges browser sessions to API
// bearer tokens.
type AuthHandler struct {
	api *apiclient.Client
	log *slog.Logger
}

func NewAuthHandler(api *apiclient.Client, log *slog.Logger) *AuthHandler {
	return &AuthHandler{api: api, log: log}
}

// ShowLogin is GET /login.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	sess := session.FromContext(c)
	old := sess.PullOldInput()
	if old == nil {
		old = map[string]string{}
	}
	render(c, http.StatusOK, "login", gin.H{
		"Title":    "Log in",
		"Old":      old,
		"LoggedIn": false,
	})
}

// Login is POST /login. The password is never flashed back, only the email
// field is repopulated on failure.
func (h *AuthHandler) Login(c *gin.Context) {
	sess := session.FromContext(c)

	in := dtos.LoginInput{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	if errs := validation.Login(&in); errs.Any() {
		sess.FlashErrors(errs)
		sess.FlashOldInput(map[string]string{"email": in.Email})
		redirect(c, "/login")
		return
	}

	ctx := apiclient.WithRequestOrigin(c.Request.Context(), c.Request)
	resp := h.api.Post(ctx, "/api/auth/login", map[string]any{
		"email":    in.Email,
		"password": in.Password,
	}, "")

	if resp.Failed() {
		sess.FlashError("email", "Invalid credentials provided.")
		sess.FlashOldInput(map[string]string{"email": in.Email})
		redirect(c, "/login")
		return
	}

	token, _ := resp.JSON("token", "").(string)
	if token == "" {
		sess.FlashError("email", "Unable to retrieve authentication token.")
		sess.FlashOldInput(map[string]string{"email": in.Email})
		redirect(c, "/login")
		return
	}

	sess.PutToken(token)
	sess.Regenerate(ctx)
	sess.FlashStatus("Logged in successfully.")
	redirect(c, "/jobs")
}

// Logout is POST /logout. The API-side revocation is best effort, the local
// session is cleared regardless.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := session.FromContext(c)
	ctx := apiclient.WithRequestOrigin(c.Request.Context(), c.Request)

	if token := sess.Token(); token != "" {
		h.api.Post(ctx, "/api/auth/logout", map[string]any{}, token)
	}

	sess.ForgetToken()
	sess.Invalidate(ctx)
	sess.FlashStatus("Logged out successfully.")
	redirect(c, "/login")
}
