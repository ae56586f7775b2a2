package server

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeRendersFeed(t *testing.T) {
	app := newTestApp(t)
	cookie := signup(t, app, "alice", "p")

	resp := get(t, app, "/home", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	page := body(t, resp)
	assert.Contains(t, page, "Welcome")
	assert.Contains(t, page, "alice")
}

func TestUploadAndViewPost(t *testing.T) {
	app := newTestApp(t)
	cookie := signup(t, app, "alice", "p")

	resp := upload(t, app, cookie, "meme.png", "lol")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/home", resp.Header.Get("Location"))

	// The feed shows the new post.
	resp = get(t, app, "/home", cookie)
	page := body(t, resp)
	assert.Contains(t, page, "meme.png")
	assert.Contains(t, page, "lol")

	// The media file is downloadable.
	resp = get(t, app, "/content/meme.png", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "fake media content", body(t, resp))

	// The single-post page names the owner and shows owner controls.
	resp = get(t, app, "/view-post/meme.png", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page = body(t, resp)
	assert.Contains(t, page, "Post by alice")
	assert.Contains(t, page, "lol")
	assert.Contains(t, page, "Edit Caption")
}

func TestViewPostHidesOwnerControlsFromOthers(t *testing.T) {
	app := newTestApp(t)
	alice := signup(t, app, "alice", "p")
	upload(t, app, alice, "meme.png", "lol")

	bob := signup(t, app, "bob", "p")
	resp := get(t, app, "/view-post/meme.png", bob)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	page := body(t, resp)
	assert.Contains(t, page, "Post by alice")
	assert.NotContains(t, page, "Edit Caption")
}

func TestViewPostUnknownRedirectsHome(t *testing.T) {
	app := newTestApp(t)
	cookie := signup(t, app, "alice", "p")

	resp := get(t, app, "/view-post/nonexistent.png", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/home", resp.Header.Get("Location"))
}

func TestUploadRejectsDisallowedExtensions(t *testing.T) {
	app := newTestApp(t)
	cookie := signup(t, app, "alice", "p")

	tests := []struct {
		name     string
		filename string
	}{
		{"Executable", "malware.exe"},
		{"No Extension", "namenoext"},
		{"Script", "payload.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := upload(t, app, cookie, tt.filename, "nope")
			// Rejection is silent: redirect home, nothing stored.
			assert.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, "/home", resp.Header.Get("Location"))

			resp = get(t, app, "/home", cookie)
			assert.NotContains(t, body(t, resp), "nope")
		})
	}
}

func TestUploadSanitizesFilename(t *testing.T) {
	app := newTestApp(t)
	cookie := signup(t, app, "alice", "p")

	resp := upload(t, app, cookie, "../../escape attempt.png", "caught")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	// The stored name keeps no trace of the traversal attempt.
	resp = get(t, app, "/view-post/escape_attempt.png", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "caught")
}

func TestEditCaptionOwnership(t *testing.T) {
	app := newTestApp(t)
	alice := signup(t, app, "alice", "p")
	upload(t, app, alice, "meme.png", "lol")

	bob := signup(t, app, "bob", "p")

	// A non-owner edit is a silent no-op.
	resp := postForm(t, app, "/edit-caption/meme.png", url.Values{"new_caption": {"haha"}}, bob)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = get(t, app, "/view-post/meme.png", alice)
	assert.Contains(t, body(t, resp), "lol")

	// The owner's edit sticks.
	resp = postForm(t, app, "/edit-caption/meme.png", url.Values{"new_caption": {"haha"}}, alice)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = get(t, app, "/view-post/meme.png", alice)
	page := body(t, resp)
	assert.Contains(t, page, "haha")
	assert.NotContains(t, page, "lol")
}

func TestEditCaptionPageRenders(t *testing.T) {
	app := newTestApp(t)
	cookie := signup(t, app, "alice", "p")

	resp := get(t, app, "/edit-caption/meme.png", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "meme.png")
}

func TestDeletePost(t *testing.T) {
	app := newTestApp(t)
	alice := signup(t, app, "alice", "p")
	upload(t, app, alice, "meme.png", "lol")

	// A non-owner delete leaves everything in place.
	bob := signup(t, app, "bob", "p")
	resp := postForm(t, app, "/delete-post/meme.png", url.Values{}, bob)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = get(t, app, "/view-post/meme.png", alice)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The owner's delete removes the log entry and the media file.
	resp = postForm(t, app, "/delete-post/meme.png", url.Values{}, alice)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = get(t, app, "/view-post/meme.png", alice)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = get(t, app, "/content/meme.png", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Deleting again is harmless.
	resp = postForm(t, app, "/delete-post/meme.png", url.Values{}, alice)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}
