package cms

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const maxUploadSize = 5 << 20 // 5 MiB

// allowedExtensions is the upload allow-list. Only the filename extension
// is checked; the bytes themselves are stored verbatim, no sniffing.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ErrUploadRejected wraps every validation failure of an upload so the
// handler can map the whole class to a 400.
var ErrUploadRejected = errors.New("upload rejected")

// UploadResult describes a stored file: the public path a caller is
// expected to reference from a post, and the generated filename.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Uploads persists caller-supplied image files under a local directory and
// serves them back by public path. Files are named by a fresh hex UUID plus
// the original extension, so writes never collide and the original name
// can't traverse anywhere. Stored files are immutable; nothing deletes them.
type Uploads struct {
	dir string
}

// NewUploads ensures the uploads directory exists and returns a handle to it.
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

// Dir returns the directory uploads are written to.
func (u *Uploads) Dir() string {
	return u.dir
}

// Store validates filename and size, writes data under a freshly generated
// name, and returns the public path. Validation failures wrap
// ErrUploadRejected.
func (u *Uploads) Store(filename string, data []byte) (UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return UploadResult{}, fmt.Errorf("%w: allowed: %s", ErrUploadRejected, allowedList())
	}
	if len(data) > maxUploadSize {
		return UploadResult{}, fmt.Errorf("%w: file too large (max 5 MB)", ErrUploadRejected)
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0o644); err != nil {
		return UploadResult{}, fmt.Errorf("write upload: %w", err)
	}
	return UploadResult{URL: "/uploads/" + name, Filename: name}, nil
}

func allowedList() string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
