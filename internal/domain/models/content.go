// internal/domain/models/content.go
package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Blog is a blog post as returned by the admin blog endpoints.
type Blog struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Image       string    `json:"image"`
	IsFeatured  bool      `json:"isFeatured"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BlogCategories are the categories offered on the blog form.
var BlogCategories = []string{
	"General", "Change", "Inspiration", "Stories", "Community", "Action",
	"Impact", "Environment", "Education", "Health", "Politics", "Human Rights",
}

// DefaultBlogCategory is selected when a blog has no category.
const DefaultBlogCategory = "General"

// BlogListResponse is the shape of GET /api/blogs/admin/all.
type BlogListResponse struct {
	Blogs      []Blog `json:"blogs"`
	TotalPages int    `json:"totalPages"`
}

// Ad is a sponsored placement.
type Ad struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetURL   string     `json:"targetUrl"`
	Position    string     `json:"position"`
	IsActive    bool       `json:"isActive"`
	Priority    int        `json:"priority"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	ImageURL    string     `json:"imageUrl"`
	Impressions int        `json:"impressions"`
	Clicks      int        `json:"clicks"`
}

// AdPositions are the placements an ad can occupy.
var AdPositions = []string{"sidebar", "header", "footer", "inline"}

// DefaultAdPosition is used for new ads.
const DefaultAdPosition = "sidebar"

// AdsResponse is the shape of GET /api/ads.
type AdsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Ads     []Ad   `json:"ads"`
}

// Category is a petition category.
type Category struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoriesResponse is the shape of GET /api/admin/categories.
type CategoriesResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Categories []Category `json:"categories"`
}

// Comment is a user comment on a petition.
type Comment struct {
	ID        string            `json:"_id"`
	Content   string            `json:"content"`
	User      Ref               `json:"user"`
	Petition  Ref               `json:"petition"`
	CreatedAt time.Time         `json:"createdAt"`
	Likes     []json.RawMessage `json:"likes"`
	Replies   Replies           `json:"replies"`
	IsEdited  bool              `json:"isEdited"`
}

// CommentListResponse is the shape of GET /api/comments/admin/unapproved.
type CommentListResponse struct {
	Comments []Comment `json:"comments"`
}

// PetitionCommentsResponse is the shape of the per-petition comment listing.
type PetitionCommentsResponse struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	Comments    []Comment `json:"comments"`
	HasNextPage bool      `json:"hasNextPage"`
}

// Replies is a comment's reply thread. Entries the backend did not
// populate (bare ids) are dropped.
type Replies []Comment

func (rs *Replies) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Replies, 0, len(raw))
	for _, r := range raw {
		r = bytes.TrimSpace(r)
		if len(r) == 0 || r[0] != '{' {
			continue
		}
		var c Comment
		if err := json.Unmarshal(r, &c); err != nil {
			return err
		}
		out = append(out, c)
	}
	*rs = out
	return nil
}
