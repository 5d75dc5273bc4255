package export

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vango-dev/vrender/internal/errors"
)

// Sink stores exported files.
type Sink interface {
	// Put stores body under key. Keys use forward slashes and never
	// start with one.
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// KeyForRoute maps a page route to a storage key.
// "/" becomes "index.html", "/about" becomes "about/index.html" and
// routes that already end in ".html" are kept as files.
func KeyForRoute(route string) (string, error) {
	if !strings.HasPrefix(route, "/") {
		return "", errors.New("X201").
			WithDetailf("Route %q must start with /.", route)
	}
	for _, seg := range strings.Split(route, "/") {
		if seg == ".." || seg == "." {
			return "", errors.New("X201").
				WithDetailf("Route %q contains a relative path segment.", route)
		}
	}

	clean := strings.Trim(path.Clean(route), "/")
	switch {
	case clean == "":
		return "index.html", nil
	case strings.HasSuffix(clean, ".html"):
		return clean, nil
	default:
		return clean + "/index.html", nil
	}
}

// DirSink writes files under a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates a sink rooted at dir. The directory is created on
// first write.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Dir returns the root directory.
func (s *DirSink) Dir() string {
	return s.dir
}

// Put writes body to dir/key, creating parent directories.
func (s *DirSink) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return os.WriteFile(target, body, 0644)
}
