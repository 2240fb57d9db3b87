package models

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/octabyte/bm-social/enums"
)

type Post struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	MediaType   enums.MediaType `json:"mediaType"`
	ImageURLs   []string        `json:"imageUrls,omitempty"`
	VideoURL    string          `json:"videoUrl,omitempty"`
	CreatedAt   Timestamp       `json:"createdAt"`
	Username    string          `json:"username"`
}

// Initial returns the upper-cased first letter of the author, "U" when the
// post has no username.
func (p Post) Initial() string {
	if p.Username == "" {
		return "U"
	}
	return strings.ToUpper(string([]rune(p.Username)[:1]))
}

// Timestamp decodes RFC 3339 values as well as zone-less ISO-8601 local
// date-times, which are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
