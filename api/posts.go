package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/octabyte/bm-social/models"
)

const (
	postsPath   = "/api/posts"
	myPostsPath = "/api/posts/me"

	fieldDescription = "description"
	fieldIsVideo     = "isVideo"
	fieldMediaFiles  = "mediaFiles"
)

// MediaPart is one uploaded file of a new post.
type MediaPart struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type NewPost struct {
	Description string
	IsVideo     bool
	Media       []MediaPart
}

// CreatePost uploads a post as multipart form data. Media parts keep their
// order.
func (c *Client) CreatePost(ctx context.Context, post NewPost) (models.Post, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return models.Post{}, err
	}

	fields := make([]*resty.MultipartField, 0, len(post.Media))
	for _, media := range post.Media {
		fields = append(fields, &resty.MultipartField{
			Param:       fieldMediaFiles,
			FileName:    media.Name,
			ContentType: media.ContentType,
			Reader:      media.Content,
		})
	}
	req.SetMultipartFormData(map[string]string{
		fieldDescription: post.Description,
		fieldIsVideo:     strconv.FormatBool(post.IsVideo),
	}).SetMultipartFields(fields...)

	body, err := c.do(ctx, "create-post", http.MethodPost, postsPath, req)
	if err != nil {
		return models.Post{}, err
	}

	var created models.Post
	if err := decode(body, &created); err != nil {
		return models.Post{}, err
	}
	return created, nil
}

func (c *Client) ListMyPosts(ctx context.Context) ([]models.Post, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, "list-my-posts", http.MethodGet, myPostsPath, req)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := decode(body, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost replaces the description of a post. The body is the new
// description as a JSON string.
func (c *Client) UpdatePost(ctx context.Context, id int64, description string) (models.Post, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return models.Post{}, err
	}

	payload, err := json.Marshal(description)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to encode description: %w", err)
	}
	req.SetHeader("Content-Type", "application/json").SetBody(payload)

	body, err := c.do(ctx, "update-post", http.MethodPut, postPath(id), req)
	if err != nil {
		return models.Post{}, err
	}

	var updated models.Post
	if err := decode(body, &updated); err != nil {
		return models.Post{}, err
	}
	return updated, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	req, err := c.authorized(ctx)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, "delete-post", http.MethodDelete, postPath(id), req)
	return err
}

func postPath(id int64) string {
	return postsPath + "/" + strconv.FormatInt(id, 10)
}
