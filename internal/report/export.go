package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexiusacademia/gorcd/internal/detailing"
	"github.com/google/uuid"
)

// ErrUnsupportedFormat is returned by Export for extensions other than .pdf
// and .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Meta identifies one generated report.
type Meta struct {
	ID        uuid.UUID
	Title     string
	Generated time.Time
}

// NewMeta returns report metadata with a fresh identifier.
func NewMeta(title string) Meta {
	if title == "" {
		title = "Beam Reinforcement Detailing"
	}
	return Meta{ID: uuid.New(), Title: title, Generated: time.Now()}
}

// Export writes res to path, picking the format from the extension.
func Export(path string, res *detailing.Result, meta Meta) error {
	var write func(*os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		write = func(f *os.File) error { return WritePDF(f, res, meta) }
	case ".xlsx":
		write = func(f *os.File) error { return WriteXLSX(f, res, meta) }
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
