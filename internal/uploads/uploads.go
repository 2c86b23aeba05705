// Package uploads stores advertisement images on disk and hands back
// stable reference strings. The rest of the system only ever sees these
// references, never raw bytes.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// refPrefix is the URL-facing path references are issued under. It
// matches the static mount and stays fixed whatever directory the
// files land in on disk.
const refPrefix = "uploads"

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

type Store struct {
	dir     string
	baseURL string
}

func NewStore(dir, baseURL string) *Store {
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SaveAll writes the accepted files to disk and returns their reference
// strings ("uploads/<name>") in upload order. Files with a disallowed
// extension are skipped, not rejected.
func (s *Store) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}

	var refs []string
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExtensions[ext] {
			continue
		}

		// Unique name so concurrent uploads never overwrite each other.
		name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(fh.Filename))

		if err := saveFile(fh, filepath.Join(s.dir, name)); err != nil {
			return nil, err
		}

		refs = append(refs, refPrefix+"/"+name)
	}

	return refs, nil
}

// URLs resolves stored references to full URLs under the configured
// base URL, preserving order.
func (s *Store) URLs(refs []string) []string {
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		urls = append(urls, s.baseURL+"/"+strings.TrimLeft(ref, "/"))
	}
	return urls
}

// Dir returns the on-disk upload directory, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

func saveFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
