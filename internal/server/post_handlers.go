package server

import (
	"time"

	"memebin/internal/middleware"
	"memebin/internal/models"
	"memebin/internal/observability"
	"memebin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET and POST /home: the shared feed, newest post first.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("home", fiber.Map{
		"Username": sessionUsername(c),
		"Posts":    posts,
	})
}

// ViewPost handles GET /view-post/:filename. Unknown posts silently redirect
// back to the feed.
func (s *Server) ViewPost(c *fiber.Ctx) error {
	post, err := s.postRepo.Get(c.UserContext(), c.Params("filename"))
	if err != nil {
		if models.IsNotFound(err) {
			return c.Redirect("/home", fiber.StatusFound)
		}
		return err
	}
	return c.Render("view_post", fiber.Map{
		"Username": sessionUsername(c),
		"Post":     post,
		"IsOwner":  post.OwnedBy(sessionUsername(c)),
	})
}

// Upload handles POST /uploader/. A missing file or a disallowed extension
// performs no store mutation and redirects home without surfacing an error.
func (s *Server) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("meme-file")
	if err != nil {
		return c.Redirect("/home", fiber.StatusFound)
	}

	filename := validation.SanitizeFilename(file.Filename)
	if !validation.AllowedExtension(filename) {
		observability.UploadsRejected.Inc()
		middleware.Logger.InfoContext(c.UserContext(), "upload rejected", "filename", filename)
		return c.Redirect("/home", fiber.StatusFound)
	}

	src, err := file.Open()
	if err != nil {
		return models.NewInternalError(err)
	}
	defer src.Close()

	if err := s.media.Save(filename, src); err != nil {
		return err
	}

	post := &models.Post{
		Filename: filename,
		PostedAt: time.Now().Format(time.ANSIC),
		Owner:    sessionUsername(c),
		Caption:  c.FormValue("caption-text"),
	}
	if err := s.postRepo.Create(c.UserContext(), post); err != nil {
		return err
	}

	observability.PostsCreated.Inc()
	middleware.Logger.InfoContext(c.UserContext(), "post created", "filename", filename)
	return c.Redirect("/home", fiber.StatusFound)
}

// EditCaptionPage handles GET /edit-caption/:filename.
func (s *Server) EditCaptionPage(c *fiber.Ctx) error {
	return c.Render("edit_caption", fiber.Map{
		"Username": sessionUsername(c),
		"Filename": c.Params("filename"),
	})
}

// EditCaption handles POST /edit-caption/:filename. Only the owner's caption
// changes; anything else is a silent no-op followed by the usual redirect.
func (s *Server) EditCaption(c *fiber.Ctx) error {
	err := s.postRepo.UpdateCaption(c.UserContext(),
		c.Params("filename"), c.FormValue("new_caption"), sessionUsername(c))
	if err != nil {
		return err
	}
	return c.Redirect("/home", fiber.StatusFound)
}

// DeletePost handles POST /delete-post/:filename. The backing media file is
// removed first; removal errors are swallowed so a half-deleted post can be
// deleted again.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	removed, err := s.postRepo.Delete(c.UserContext(), c.Params("filename"), sessionUsername(c))
	if err != nil {
		return err
	}

	for _, filename := range removed {
		if rmErr := s.media.Remove(filename); rmErr != nil {
			middleware.Logger.WarnContext(c.UserContext(), "media file removal failed",
				"filename", filename, "error", rmErr.Error())
		}
		observability.PostsDeleted.Inc()
	}
	return c.Redirect("/home", fiber.StatusFound)
}
