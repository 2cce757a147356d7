package cms

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFile is a single free-form JSON document on disk, read and written
// wholesale. The backend enforces no schema; it is a bag of UI-facing
// settings owned by the admin panel. Writes are a full replace with no
// locking or versioning: concurrent writers race and the last one wins.
type ConfigFile struct {
	path string
}

// NewConfigFile returns a handle to the JSON document at path and
// bootstraps a default document if none exists yet.
func NewConfigFile(path string) (*ConfigFile, error) {
	f := &ConfigFile{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := f.Write(defaultDocument()); err != nil {
			return nil, fmt.Errorf("bootstrap config: %w", err)
		}
	} else if err != nil {
		return nil, err
	}
	return f, nil
}

// Read returns the raw document bytes.
func (f *ConfigFile) Read() (json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// Write replaces the document with doc, pretty-printed for hand editing.
func (f *ConfigFile) Write(doc map[string]any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o644)
}

// defaultDocument is the bootstrap payload written on first run. The
// "spotlight" block is the shape the stock admin panel edits; nothing in
// the backend depends on it.
func defaultDocument() map[string]any {
	return map[string]any{
		"spotlight": map[string]any{
			"title":    "TON: ecosystem growth",
			"text":     "New active wallets, mini-apps and Telegram Wallet integration case studies.",
			"image":    "/uploads/example.jpg",
			"cta_text": "Browse the guides",
			"cta_href": "https://web3live.ru",
		},
	}
}
