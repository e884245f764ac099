// Package document reads and writes the artifact that holds the section.
// Locations are plain filesystem paths or afs URLs (mem://, file://, ...).
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

const defaultMode os.FileMode = 0o644

// Document is an artifact loaded into memory.
type Document struct {
	Location string
	Encoding string
	Mode     os.FileMode
	Text     string
}

// Store loads and saves documents with a fixed encoding.
type Store struct {
	fs       afs.Service
	encoding string
}

// NewStore returns a store for the named encoding ("" means utf-8).
func NewStore(encodingName string) (*Store, error) {
	name, _, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return &Store{fs: afs.New(), encoding: name}, nil
}

func (s *Store) Encoding() string {
	return s.encoding
}

// Load reads the whole artifact and decodes it.
func (s *Store) Load(ctx context.Context, location string) (Document, error) {
	_, enc, err := lookupEncoding(s.encoding)
	if err != nil {
		return Document{}, err
	}
	u, local := resolve(location)
	mode := defaultMode
	if local {
		info, err := os.Stat(u.path)
		if err != nil {
			return Document{}, fmt.Errorf("document load failed (%s): %w", location, err)
		}
		if info.IsDir() {
			return Document{}, fmt.Errorf("document load failed (%s): is a directory", location)
		}
		mode = info.Mode().Perm()
	} else if obj, err := s.fs.Object(ctx, u.url); err == nil && obj.Mode().Perm() != 0 {
		mode = obj.Mode().Perm()
	}
	data, err := s.fs.DownloadWithURL(ctx, u.url)
	if err != nil {
		return Document{}, fmt.Errorf("document load failed (%s): %w", location, err)
	}
	text, err := decode(enc, data)
	if err != nil {
		return Document{}, fmt.Errorf("document decode failed (%s, %s): %w", location, s.encoding, err)
	}
	return Document{Location: location, Encoding: s.encoding, Mode: mode, Text: text}, nil
}

// Save encodes text and fully overwrites doc's artifact, keeping its mode.
func (s *Store) Save(ctx context.Context, doc Document, text string) error {
	_, enc, err := lookupEncoding(s.encoding)
	if err != nil {
		return err
	}
	data, err := encode(enc, text)
	if err != nil {
		return fmt.Errorf("document encode failed (%s, %s): %w", doc.Location, s.encoding, err)
	}
	mode := doc.Mode
	if mode == 0 {
		mode = defaultMode
	}
	u, local := resolve(doc.Location)
	if local {
		err = writeAtomic(u.path, data, mode)
	} else {
		err = s.fs.Upload(ctx, u.url, mode, bytes.NewReader(data))
	}
	if err != nil {
		return fmt.Errorf("document save failed (%s): %w", doc.Location, err)
	}
	return nil
}

// ReadText reads location and decodes it with the store's encoding.
// "-" reads stdin.
func (s *Store) ReadText(ctx context.Context, location string) (string, error) {
	_, enc, err := lookupEncoding(s.encoding)
	if err != nil {
		return "", err
	}
	var data []byte
	if location == "-" {
		data, err = io.ReadAll(os.Stdin)
		location = "stdin"
	} else {
		u, _ := resolve(location)
		data, err = s.fs.DownloadWithURL(ctx, u.url)
	}
	if err != nil {
		return "", fmt.Errorf("read failed (%s): %w", location, err)
	}
	text, err := decode(enc, data)
	if err != nil {
		return "", fmt.Errorf("read decode failed (%s, %s): %w", location, s.encoding, err)
	}
	return text, nil
}

type target struct {
	url  string
	path string
}

func resolve(location string) (target, bool) {
	if strings.Contains(location, "://") && !strings.HasPrefix(location, file.Scheme+"://") {
		return target{url: location}, false
	}
	p := strings.TrimPrefix(location, file.Scheme+"://")
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return target{url: file.Scheme + "://" + filepath.ToSlash(p), path: p}, true
}
