// Package server contains the HTTP handlers for the application's pages and
// form endpoints.
package server

import (
	"context"
	"sync"

	"memebin/internal/config"
	"memebin/internal/middleware"
	"memebin/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// sessionUserKey is the session entry holding the logged-in username.
const sessionUserKey = "username"

// Prometheus collectors register globally, so the middleware is built once
// and shared across server instances (tests construct many).
var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

func initMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New("memebin")
	})
	return promInstance
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	chatRepo       repository.ChatRepository
	media          repository.MediaStore
	sessions       *session.Store
	promMiddleware *fiberprometheus.FiberPrometheus
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	return NewServerWithDeps(cfg,
		repository.NewUserRepository(cfg.CredentialsPath()),
		repository.NewPostRepository(cfg.ContentLogPath()),
		repository.NewChatRepository(cfg.ChatLogPath()),
		repository.NewMediaStore(cfg.ContentsDir()),
	)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests to substitute repositories.
func NewServerWithDeps(cfg *config.Config, users repository.UserRepository,
	posts repository.PostRepository, chat repository.ChatRepository,
	media repository.MediaStore) (*Server, error) {

	return &Server{
		config:   cfg,
		userRepo: users,
		postRepo: posts,
		chatRepo: chat,
		media:    media,
		sessions: session.New(session.Config{
			KeyLookup: "cookie:memebin_session",
		}),
		promMiddleware: initMetrics(),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())

	// The session cookie is encrypted and authenticated, so a tampered
	// identity cookie never reaches the session store.
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: s.config.SessionSecret,
	}))

	// Prometheus request metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Structured logging (after requestid so the ID is available)
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Index)

	// Account pages
	app.All("/login", s.Login)
	app.All("/signup/", s.Signup)
	app.Get("/logout/", s.RequireLogin, s.Logout)

	// Feed and post pages
	app.All("/home", s.RequireLogin, s.Home)
	app.Get("/view-post/:filename", s.RequireLogin, s.ViewPost)
	app.Post("/uploader/", s.RequireLogin, s.Upload)
	app.Get("/edit-caption/:filename", s.RequireLogin, s.EditCaptionPage)
	app.Post("/edit-caption/:filename", s.RequireLogin, s.EditCaption)
	app.Post("/delete-post/:filename", s.RequireLogin, s.DeletePost)

	// Chat
	app.All("/post-chat/", s.RequireLogin, s.PostChat)
	app.Get("/chat-history/*", s.ChatHistory)

	// Static assets. Fiber's Static handler normalizes the request path, so
	// traversal out of the served roots is rejected.
	app.Static("/content", s.media.Dir())
	app.Static("/scripts", s.config.ScriptsDir)

	// Operational endpoints
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/status", monitor.New(monitor.Config{
		Title: "Memebin Metrics Dashboard",
	}))
}

// Index redirects to the feed for logged-in users and to the login page for
// everyone else.
func (s *Server) Index(c *fiber.Ctx) error {
	if _, ok := s.currentUser(c); ok {
		return c.Redirect("/home", fiber.StatusFound)
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// RequireLogin guards a route: requests without an authenticated session are
// redirected to the login page.
func (s *Server) RequireLogin(c *fiber.Ctx) error {
	username, ok := s.currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	c.Locals("username", username)
	c.SetUserContext(context.WithValue(c.UserContext(), middleware.UsernameKey, username))
	return c.Next()
}

// currentUser returns the username stored in the request's session, if any.
func (s *Server) currentUser(c *fiber.Ctx) (string, bool) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return "", false
	}
	username, ok := sess.Get(sessionUserKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// loginUser establishes a session for the given (already canonical) username.
func (s *Server) loginUser(c *fiber.Ctx, username string) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, username)
	return sess.Save()
}

// logoutUser clears the session. Destroying an absent session is a no-op, so
// logout stays idempotent.
func (s *Server) logoutUser(c *fiber.Ctx) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return
	}
	_ = sess.Destroy()
}

// sessionUsername returns the username placed in locals by RequireLogin.
func sessionUsername(c *fiber.Ctx) string {
	username, _ := c.Locals("username").(string)
	return username
}
