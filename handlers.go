package cms

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *App) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if !a.cfg.VerifyCredentials(req.Username, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Bad credentials")
	}
	return c.JSON(http.StatusOK, map[string]string{"token": a.cfg.IssueToken(req.Username)})
}

func (a *App) handleListPosts(c echo.Context) error {
	posts, err := a.store.ListPosts(c.QueryParam("status"))
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleGetPost(c echo.Context) error {
	post, err := a.store.GetPostBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleCreatePost(c echo.Context) error {
	in, err := bindPostInput(c)
	if err != nil {
		return err
	}
	post, err := a.store.CreatePost(in)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "Slug already exists")
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleUpdatePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	in, err := bindPostInput(c)
	if err != nil {
		return err
	}
	post, err := a.store.UpdatePost(id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		case errors.Is(err, ErrSlugTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "Slug already exists")
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleDeletePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	if err := a.store.DeletePost(id); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// bindPostInput decodes and validates the post payload shared by create and
// update. Malformed JSON fails at the bind boundary; missing required
// fields fail with 422 before any business logic runs.
func bindPostInput(c echo.Context) (PostInput, error) {
	var in PostInput
	if err := c.Bind(&in); err != nil {
		return PostInput{}, err
	}
	if in.Title == "" {
		return PostInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity, "title is required")
	}
	if in.ContentHTML == "" {
		return PostInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity, "content_html is required")
	}
	return in, nil
}

func (a *App) handleUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file provided")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	// Read one byte past the ceiling so oversized payloads are detected
	// without buffering the whole body.
	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return err
	}

	res, err := a.uploads.Store(file.Filename, data)
	if err != nil {
		if errors.Is(err, ErrUploadRejected) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (a *App) handleGetConfig(c echo.Context) error {
	doc, err := a.siteConfig.Read()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSONBlob(http.StatusOK, doc)
}

func (a *App) handlePutConfig(c echo.Context) error {
	var doc map[string]any
	if err := c.Bind(&doc); err != nil {
		return err
	}
	if err := a.siteConfig.Write(doc); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.store.Ping(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database unreachable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
