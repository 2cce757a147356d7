package cms

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors returned by Store operations. Handlers map these onto
// HTTP status codes.
var (
	ErrPostNotFound = errors.New("post not found")
	ErrSlugTaken    = errors.New("slug already exists")
)

// Store wraps a SQLite database and provides CRUD operations for posts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access and set a busy
	// timeout so writers wait instead of returning SQLITE_BUSY immediately.
	// synchronous=NORMAL is safe with WAL and avoids an fsync per commit.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) ensureSchema() error {
	// AUTOINCREMENT keeps rowids monotonic so deleted ids are never reused.
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    cover_url TEXT NOT NULL DEFAULT '',
    excerpt TEXT NOT NULL DEFAULT '',
    content_html TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'published',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

const postColumns = `id, title, slug, cover_url, excerpt, content_html, tags, status, created_at, updated_at`

// timeFormat is fixed-width so lexicographic ordering of the stored text
// matches chronological ordering. Timestamps are always stored in UTC.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	var created, updated string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.CoverURL, &p.Excerpt,
		&p.ContentHTML, &p.Tags, &p.Status, &created, &updated)
	if err != nil {
		return Post{}, err
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Post{}, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return Post{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return p, nil
}

// ListPosts returns all posts ordered by creation time descending. A
// non-empty status restricts the result to an exact match, applied after
// the fetch; the status column is an open set and carries no index.
func (s *Store) ListPosts(status string) ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		if status != "" && p.Status != status {
			continue
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPostBySlug returns a single post by slug.
func (s *Store) GetPostBySlug(slug string) (Post, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
	if err == sql.ErrNoRows {
		return Post{}, ErrPostNotFound
	}
	return p, err
}

// GetPostByID returns a single post by id.
func (s *Store) GetPostByID(id int64) (Post, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return Post{}, ErrPostNotFound
	}
	return p, err
}

// slugInUse reports whether slug is taken by a post other than exceptID.
// Pass exceptID 0 to check against all rows.
func (s *Store) slugInUse(slug string, exceptID int64) (bool, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM posts WHERE slug = ?`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return id != exceptID, nil
}

// CreatePost resolves the slug, assigns id and timestamps, and persists the
// post. Returns ErrSlugTaken when the resolved slug is already in use. The
// existence pre-check is advisory only; the UNIQUE constraint is what
// actually decides a concurrent race.
func (s *Store) CreatePost(in PostInput) (Post, error) {
	p := postFromInput(in)
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if taken, err := s.slugInUse(p.Slug, 0); err != nil {
		return Post{}, err
	} else if taken {
		return Post{}, ErrSlugTaken
	}

	res, err := s.db.Exec(`INSERT INTO posts (title, slug, cover_url, excerpt, content_html, tags, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.CoverURL, p.Excerpt, p.ContentHTML, p.Tags, p.Status,
		p.CreatedAt.Format(timeFormat), p.UpdatedAt.Format(timeFormat))
	if err != nil {
		if isUniqueViolation(err) {
			return Post{}, ErrSlugTaken
		}
		return Post{}, err
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

// UpdatePost replaces every caller-supplied field of the post wholesale,
// re-resolving the slug from the new title when no explicit slug is given.
// created_at is preserved and updated_at is stamped server-side. Returns
// ErrPostNotFound for an unknown id and ErrSlugTaken when the resolved slug
// belongs to a different post.
func (s *Store) UpdatePost(id int64, in PostInput) (Post, error) {
	existing, err := s.GetPostByID(id)
	if err != nil {
		return Post{}, err
	}

	p := postFromInput(in)
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	if taken, err := s.slugInUse(p.Slug, id); err != nil {
		return Post{}, err
	} else if taken {
		return Post{}, ErrSlugTaken
	}

	_, err = s.db.Exec(`UPDATE posts SET title = ?, slug = ?, cover_url = ?, excerpt = ?, content_html = ?, tags = ?, status = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Slug, p.CoverURL, p.Excerpt, p.ContentHTML, p.Tags, p.Status,
		p.UpdatedAt.Format(timeFormat), id)
	if err != nil {
		if isUniqueViolation(err) {
			return Post{}, ErrSlugTaken
		}
		return Post{}, err
	}
	return p, nil
}

// DeletePost removes a post by id. Hard delete, no tombstone.
func (s *Store) DeletePost(id int64) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}

// postFromInput normalizes a PostInput into a Post with the slug resolved
// and the status defaulted.
func postFromInput(in PostInput) Post {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(in.Title)
	}
	status := in.Status
	if status == "" {
		status = "published"
	}
	return Post{
		Title:       in.Title,
		Slug:        slug,
		CoverURL:    in.CoverURL,
		Excerpt:     in.Excerpt,
		ContentHTML: in.ContentHTML,
		Tags:        in.Tags,
		Status:      status,
	}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
