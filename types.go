// Package cms is the web3live content-management backend. It serves a JSON
// API for blog posts, image uploads, and a free-form site config document,
// with the pre-built site and uploaded files served as static fallbacks.
package cms

import "time"

// Post is the core content type stored in SQLite and returned over the wire.
// ContentHTML is pre-rendered markup, stored and returned verbatim.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	CoverURL    string    `json:"cover_url"`
	Excerpt     string    `json:"excerpt"`
	ContentHTML string    `json:"content_html"`
	Tags        string    `json:"tags"` // comma-separated
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostInput is the caller-supplied payload for create and update. A missing
// slug is derived from the title; a missing status defaults to "published".
type PostInput struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	CoverURL    string `json:"cover_url"`
	Excerpt     string `json:"excerpt"`
	ContentHTML string `json:"content_html"`
	Tags        string `json:"tags"`
	Status      string `json:"status"`
}
