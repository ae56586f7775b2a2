package server

import (
	"errors"

	"memebin/internal/middleware"
	"memebin/internal/models"
	"memebin/internal/observability"
	"memebin/internal/repository"
	"memebin/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Login handles GET and POST /login. Failures render the form again with a
// single generic message; the page never reveals whether the username exists.
func (s *Server) Login(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("login", fiber.Map{})
	}

	username := models.CanonicalUsername(c.FormValue("username"))
	password := c.FormValue("password")

	user, err := s.userRepo.Get(c.UserContext(), username)
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	}
	if err != nil {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return c.Render("login", fiber.Map{"Error": models.NewAuthError().Message})
	}

	if err := s.loginUser(c, user.Username); err != nil {
		return models.NewInternalError(err)
	}
	observability.LoginsTotal.WithLabelValues("success").Inc()
	middleware.Logger.InfoContext(c.UserContext(), "user logged in", "username", user.Username)
	return c.Redirect("/home", fiber.StatusFound)
}

// Signup handles GET and POST /signup/. Validation failures come back inline
// on the form with HTTP 200; success registers the account and logs it in.
func (s *Server) Signup(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("signup", fiber.Map{})
	}

	username := c.FormValue("username")
	password0 := c.FormValue("password0")
	password1 := c.FormValue("password1")

	if err := validation.ValidateUsername(username); err != nil {
		observability.SignupsTotal.WithLabelValues("invalid_username").Inc()
		return c.Render("signup", fiber.Map{"Error": err.Error()})
	}
	if password0 != password1 {
		observability.SignupsTotal.WithLabelValues("password_mismatch").Inc()
		return c.Render("signup", fiber.Map{"Error": "Passwords must Match!"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password0), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user := &models.User{
		Username:     models.CanonicalUsername(username),
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			observability.SignupsTotal.WithLabelValues("duplicate").Inc()
			return c.Render("signup", fiber.Map{"Error": "User already Exists!"})
		}
		return err
	}

	if err := s.loginUser(c, user.Username); err != nil {
		return models.NewInternalError(err)
	}
	observability.SignupsTotal.WithLabelValues("success").Inc()
	middleware.Logger.InfoContext(c.UserContext(), "user registered", "username", user.Username)
	return c.Redirect("/home", fiber.StatusFound)
}

// Logout handles GET /logout/.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.logoutUser(c)
	return c.Redirect("/login", fiber.StatusFound)
}
