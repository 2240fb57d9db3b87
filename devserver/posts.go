package devserver

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/models"
	ctxutils "github.com/octabyte/bm-social/utils/context"
)

func (s *Server) caller(c echo.Context) (user, error) {
	session, ok := ctxutils.GetSessionFromContext(c.Request().Context())
	if !ok {
		return user{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	u, ok := s.store.userByID(session.UserID)
	if !ok {
		return user{}, echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
	}
	return u, nil
}

func (s *Server) createPost(c echo.Context) error {
	owner, err := s.caller(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Expected multipart form data").SetInternal(err)
	}

	isVideo, _ := strconv.ParseBool(c.FormValue("isVideo"))
	files := form.File["mediaFiles"]
	switch {
	case len(files) == 0:
		return echo.NewHTTPError(http.StatusBadRequest, "At least one media file is required")
	case isVideo && len(files) > enums.MaxVideosPerPost:
		return echo.NewHTTPError(http.StatusBadRequest, "Only 1 video allowed")
	case !isVideo && len(files) > enums.MaxImagesPerPost:
		return echo.NewHTTPError(http.StatusBadRequest, "Up to 3 images allowed")
	}

	post := models.Post{Description: c.FormValue("description"), MediaType: enums.MediaTypeImage}
	if isVideo {
		post.MediaType = enums.MediaTypeVideo
	}

	for _, fh := range files {
		url, err := s.saveMedia(c, fh, isVideo)
		if err != nil {
			return err
		}
		if isVideo {
			post.VideoURL = url
		} else {
			post.ImageURLs = append(post.ImageURLs, url)
		}
	}

	created := s.store.addPost(owner, post, s.now())
	c.Logger().Infof("user %d created post %d", owner.ID, created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) saveMedia(c echo.Context, fh *multipart.FileHeader, isVideo bool) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	contentType := mimetype.Detect(content).String()
	want := "image/"
	if isVideo {
		want = "video/"
	}
	if !strings.HasPrefix(contentType, want) {
		return "", echo.NewHTTPError(http.StatusUnsupportedMediaType,
			fmt.Sprintf("%s has unsupported type %s", fh.Filename, contentType))
	}

	id := uuid.NewString()
	s.store.putMedia(id, media{ContentType: contentType, Content: content})
	return c.Scheme() + "://" + c.Request().Host + "/media/" + id, nil
}

func (s *Server) listMyPosts(c echo.Context) error {
	owner, err := s.caller(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.store.postsOf(owner.ID))
}

func (s *Server) updatePost(c echo.Context) error {
	owner, err := s.caller(c)
	if err != nil {
		return err
	}
	id, err := postID(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	var description string
	if err := json.Unmarshal(body, &description); err != nil {
		// A plain text body is taken as the description itself.
		description = string(body)
	}

	updated, err := s.store.updateDescription(owner.ID, id, description)
	if err != nil {
		return postError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deletePost(c echo.Context) error {
	owner, err := s.caller(c)
	if err != nil {
		return err
	}
	id, err := postID(c)
	if err != nil {
		return err
	}

	if err := s.store.deletePost(owner.ID, id); err != nil {
		return postError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getMedia(c echo.Context) error {
	m, ok := s.store.getMedia(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}
	return c.Blob(http.StatusOK, m.ContentType, m.Content)
}

func postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post id")
	}
	return id, nil
}

func postError(err error) error {
	switch {
	case errors.Is(err, errPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, errNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, "You can only modify your own posts")
	}
	return err
}
