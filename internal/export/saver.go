// Package export delivers rendered documents and ledger workbooks.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"renteasy/internal/report"
)

// Saver stores a rendered document and returns where it went.
type Saver interface {
	Save(ctx context.Context, doc report.Document) (location string, err error)
}

// DirSaver writes documents as files under Dir.
type DirSaver struct {
	Dir string
}

func NewDirSaver(dir string) *DirSaver {
	return &DirSaver{Dir: dir}
}

func (s *DirSaver) Save(ctx context.Context, doc report.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := SanitizeFilename(doc.Filename)
	if name == "" {
		return "", fmt.Errorf("save %s: empty filename", doc.Kind)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, []byte(doc.Body), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	slog.InfoContext(ctx, "Document saved", "kind", doc.Kind, "path", path)
	return path, nil
}

// SanitizeFilename keeps a document filename inside its directory: path
// separators and control characters become dashes.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == ':' || r == '"' {
			return '-'
		}
		return r
	}, name)
}
