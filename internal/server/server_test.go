package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"memebin/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/require"
)

// newTestApp builds a full application instance over a throwaway data
// directory, with the real view engine and middleware stack.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		Port:          "8000",
		Env:           "test",
		DataDir:       t.TempDir(),
		ViewsDir:      "../../views",
		ScriptsDir:    "../../scripts",
		SessionSecret: config.DefaultSessionSecret,
	}

	srv, err := NewServer(cfg)
	require.NoError(t, err)

	engine := html.New(cfg.ViewsDir, ".html")
	app := fiber.New(fiber.Config{Views: engine})
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return app
}

// formRequest builds an urlencoded form POST.
func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// sessionCookie extracts the session cookie from a response so follow-up
// requests can present it.
func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "memebin_session" {
			return c
		}
	}
	t.Fatal("response carries no session cookie")
	return nil
}

// signup registers a fresh account and returns its session cookie.
func signup(t *testing.T, app *fiber.App, username, password string) *http.Cookie {
	t.Helper()
	resp, err := app.Test(formRequest("/signup/", url.Values{
		"username":  {username},
		"password0": {password},
		"password1": {password},
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/home", resp.Header.Get("Location"))
	return sessionCookie(t, resp)
}

// upload posts a multipart file with a caption as the given session.
func upload(t *testing.T, app *fiber.App, cookie *http.Cookie, filename, caption string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("meme-file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake media content"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("caption-text", caption))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploader/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.AddCookie(cookie)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := formRequest(path, form)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
