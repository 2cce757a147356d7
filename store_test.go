package cms

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s == nil {
		t.Fatal("store should not be nil")
	}
	if err := s.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestCreateAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(PostInput{
		Title:       "Test Post",
		Slug:        "test-post",
		CoverURL:    "/uploads/cover.png",
		Excerpt:     "A test post excerpt",
		ContentHTML: "<p>Test content</p>",
		Tags:        "go,testing",
		Status:      "published",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("ID should be assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps should be assigned")
	}

	got, err := s.GetPostBySlug("test-post")
	if err != nil {
		t.Fatalf("GetPostBySlug failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}
	if got.Title != "Test Post" {
		t.Errorf("Title = %q, want %q", got.Title, "Test Post")
	}
	if got.CoverURL != "/uploads/cover.png" {
		t.Errorf("CoverURL = %q, want %q", got.CoverURL, "/uploads/cover.png")
	}
	if got.Excerpt != "A test post excerpt" {
		t.Errorf("Excerpt = %q, want %q", got.Excerpt, "A test post excerpt")
	}
	if got.ContentHTML != "<p>Test content</p>" {
		t.Errorf("ContentHTML = %q, want %q", got.ContentHTML, "<p>Test content</p>")
	}
	if got.Tags != "go,testing" {
		t.Errorf("Tags = %q, want %q", got.Tags, "go,testing")
	}
	if got.Status != "published" {
		t.Errorf("Status = %q, want %q", got.Status, "published")
	}
}

func TestCreatePostDerivesSlug(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(PostInput{Title: "Hello, World!!", ContentHTML: "<p>c</p>"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if created.Slug != "hello-world" {
		t.Errorf("Slug = %q, want %q", created.Slug, "hello-world")
	}
	if created.Status != "published" {
		t.Errorf("Status should default to published, got %q", created.Status)
	}
}

func TestCreatePostSlugConflict(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.CreatePost(PostInput{Title: "Same Title", ContentHTML: "<p>first</p>"})
	if err != nil {
		t.Fatalf("first CreatePost failed: %v", err)
	}

	_, err = s.CreatePost(PostInput{Title: "Same Title", ContentHTML: "<p>second</p>"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// The first post must be unaffected.
	got, err := s.GetPostBySlug("same-title")
	if err != nil {
		t.Fatalf("GetPostBySlug failed: %v", err)
	}
	if got.ID != first.ID || got.ContentHTML != "<p>first</p>" {
		t.Errorf("first post changed after failed conflicting create: %+v", got)
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetPostBySlug("nonexistent"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
	if _, err := s.GetPostByID(42); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestUpdatePost(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(PostInput{Title: "Original Title", ContentHTML: "<p>original</p>", Status: "draft"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	updated, err := s.UpdatePost(created.ID, PostInput{
		Title:       "Updated Title",
		ContentHTML: "<p>updated</p>",
		Status:      "published",
	})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	// Slug is re-resolved from the new title, not the old one.
	if updated.Slug != "updated-title" {
		t.Errorf("Slug = %q, want %q", updated.Slug, "updated-title")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("UpdatedAt should be re-stamped, got %v (created %v)", updated.UpdatedAt, created.UpdatedAt)
	}

	got, err := s.GetPostByID(created.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if got.Title != "Updated Title" || got.ContentHTML != "<p>updated</p>" || got.Status != "published" {
		t.Errorf("update not persisted: %+v", got)
	}

	// The old slug no longer resolves.
	if _, err := s.GetPostBySlug("original-title"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("old slug should be gone, got %v", err)
	}
}

func TestUpdatePostStampsUpdatedAt(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(PostInput{Title: "Stamped", ContentHTML: "<p>c</p>"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	updated, err := s.UpdatePost(created.ID, PostInput{Title: "Stamped", ContentHTML: "<p>c2</p>"})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want later than %v", updated.UpdatedAt, created.UpdatedAt)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.UpdatePost(99, PostInput{Title: "T", ContentHTML: "<p>c</p>"})
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestUpdatePostSlugConflict(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(PostInput{Title: "First Post", ContentHTML: "<p>1</p>"}); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	second, err := s.CreatePost(PostInput{Title: "Second Post", ContentHTML: "<p>2</p>"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// Renaming the second post onto the first post's slug must fail.
	_, err = s.UpdatePost(second.ID, PostInput{Title: "First Post", ContentHTML: "<p>2</p>"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// Updating a post while keeping its own slug must succeed.
	if _, err := s.UpdatePost(second.ID, PostInput{Title: "Second Post", ContentHTML: "<p>2b</p>"}); err != nil {
		t.Fatalf("UpdatePost with own slug failed: %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(PostInput{Title: "To Delete", ContentHTML: "<p>c</p>"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if err := s.DeletePost(created.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	if _, err := s.GetPostByID(created.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("post should be gone by id, got %v", err)
	}
	if _, err := s.GetPostBySlug("to-delete"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("post should be gone by slug, got %v", err)
	}
}

func TestDeletePostNotFound(t *testing.T) {
	s := setupTestStore(t)

	if err := s.DeletePost(12345); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestListPostsOrderAndFilter(t *testing.T) {
	s := setupTestStore(t)

	inputs := []PostInput{
		{Title: "Oldest", ContentHTML: "<p>1</p>", Status: "published"},
		{Title: "Middle", ContentHTML: "<p>2</p>", Status: "draft"},
		{Title: "Newest", ContentHTML: "<p>3</p>", Status: "published"},
	}
	for _, in := range inputs {
		if _, err := s.CreatePost(in); err != nil {
			t.Fatalf("CreatePost(%s) failed: %v", in.Title, err)
		}
		time.Sleep(5 * time.Millisecond) // distinct created_at ordering
	}

	all, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListPosts count = %d, want 3", len(all))
	}
	if all[0].Title != "Newest" || all[2].Title != "Oldest" {
		t.Errorf("posts not ordered newest first: %s, %s, %s", all[0].Title, all[1].Title, all[2].Title)
	}

	drafts, err := s.ListPosts("draft")
	if err != nil {
		t.Fatalf("ListPosts(draft) failed: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Title != "Middle" {
		t.Errorf("ListPosts(draft) = %v, want just Middle", drafts)
	}

	none, err := s.ListPosts("archived")
	if err != nil {
		t.Fatalf("ListPosts(archived) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ListPosts(archived) count = %d, want 0", len(none))
	}
}

func TestListPostsStatusExactMatch(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(PostInput{Title: "P", ContentHTML: "<p>c</p>", Status: "published"}); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// The filter is an exact string match, not case-insensitive.
	got, err := s.ListPosts("Published")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListPosts(Published) count = %d, want 0", len(got))
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.CreatePost(PostInput{Title: "First", ContentHTML: "<p>1</p>"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if err := s.DeletePost(first.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	second, err := s.CreatePost(PostInput{Title: "Second", ContentHTML: "<p>2</p>"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("id %d reused after deleting %d", second.ID, first.ID)
	}
}
