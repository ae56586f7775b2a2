package server

import (
	"memebin/internal/models"
	"memebin/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// PostChat handles GET and POST /post-chat/. Empty input appends nothing;
// the response re-renders the chat textbox partial either way. Clients poll
// /chat-history/ for new messages.
func (s *Server) PostChat(c *fiber.Ctx) error {
	text := c.FormValue("chat_input")

	if err := s.chatRepo.Append(c.UserContext(), models.ChatMessage{
		Author: sessionUsername(c),
		Text:   text,
	}); err != nil {
		return err
	}
	if text != "" {
		observability.ChatMessages.Inc()
	}

	return c.Render("chat-textbox", fiber.Map{})
}

// ChatHistory handles GET /chat-history/*. Whatever the trailing path says,
// the response is always the raw chat log, served as an HTML fragment.
func (s *Server) ChatHistory(c *fiber.Ctx) error {
	data, err := s.chatRepo.Read(c.UserContext())
	if err != nil {
		return err
	}
	c.Type("html")
	return c.Send(data)
}
