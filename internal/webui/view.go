package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/session"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Templates parses the embedded template set for the web layer.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"firstError": func(errs map[string][]string, field string) string {
			if msgs := errs[field]; len(msgs) > 0 {
				return msgs[0]
			}
			return ""
		},
		"hasError": func(errs map[string][]string, field string) bool {
			return len(errs[field]) > 0
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl"))
}

// render draws a page, injecting the flashed status and field errors from the
// session. Flashes are read-once, pulling them here clears them.
func render(c *gin.Context, status int, name string, data gin.H) {
	sess := session.FromContext(c)
	if _, ok := data["Errors"]; !ok {
		errs := sess.PullErrors()
		if errs == nil {
			errs = map[string][]string{}
		}
		data["Errors"] = errs
	}
	if _, ok := data["Status"]; !ok {
		data["Status"] = sess.PullStatus()
	}
	if _, ok := data["LoggedIn"]; !ok {
		data["LoggedIn"] = sess.Token() != ""
	}
	c.HTML(status, name, data)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
