package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PlaceholderImage is used when an idea is submitted without an image.
const PlaceholderImage = "https://images.unsplash.com/photo-1518823380156-2dd66e1745e3?auto=format&fit=crop&w=500&q=80"

// Idea is an immutable idea-board record.
type Idea struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Tags        Tags      `json:"tags"`
	Author      string    `json:"author,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Tags is an ordered tag list. On decode it accepts either a JSON array or a
// comma-separated string, which is what older API versions return.
type Tags []string

func (t *Tags) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*t = Tags{}
	case string:
		*t = ParseTags(v)
	case []any:
		out := make(Tags, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("tags: unexpected element type %T", item)
			}
			out = append(out, s)
		}
		*t = out
	default:
		return fmt.Errorf("tags: unexpected type %T", raw)
	}
	return nil
}

// MarshalJSON always encodes an array, never null.
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// ParseTags splits a comma-separated input, trims every entry and drops the
// empty ones: "ai, climate,, edtech" -> [ai climate edtech].
func ParseTags(s string) Tags {
	parts := strings.Split(s, ",")
	out := make(Tags, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PlaceholderIdea is the last-resort feed entry shown when no other source
// produced anything.
func PlaceholderIdea() Idea {
	return Idea{
		Title:       "Campus Compost Bot",
		Description: "A simple bot to collect organic waste on campuses and turn it into compost.",
		Tags:        Tags{"Sustainability", "EdTech"},
		Image:       "https://images.unsplash.com/photo-1505575967454-47f8b1f7e74e?auto=format&fit=crop&w=800&q=60",
	}
}
