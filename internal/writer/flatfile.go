// Package writer persists generated submission files using the archive
// layout the practice expects: one folder per tax year, one per trust.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jdlsoft/it3t-filing/internal/genfile"
)

// FlatFileWriter writes generated IT3(t) files to disk as ISO-8859-1 bytes.
type FlatFileWriter struct {
	// OutputDir is the archive root, e.g. "IT3(t)".
	OutputDir string
}

// SubmissionDir returns the folder a trust's files belong in:
// <OutputDir>/<tax year>/<trust name with spaces underscored>.
func (w *FlatFileWriter) SubmissionDir(res *genfile.Result) string {
	taxYear := res.Trust.SubmissionTaxYear
	if taxYear == "" {
		taxYear = time.Now().Format("2006")
	}
	trustFolder := strings.ReplaceAll(res.Trust.TrustName, " ", "_")
	return filepath.Join(w.OutputDir, taxYear, trustFolder)
}

// Write encodes the file content to ISO-8859-1 and writes it out.
func (w *FlatFileWriter) Write(out io.Writer, res *genfile.Result) error {
	encoded, err := genfile.EncodeLatin1(res.Content)
	if err != nil {
		return fmt.Errorf("content is not ISO-8859-1 encodable: %w", err)
	}
	if _, err := out.Write(encoded); err != nil {
		return fmt.Errorf("failed to write file content: %w", err)
	}
	return nil
}

// WriteToFile writes the generated file into the archive layout, creating
// directories as needed, and returns the full path written.
func (w *FlatFileWriter) WriteToFile(res *genfile.Result) (string, error) {
	dir := w.SubmissionDir(res)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}

	path := filepath.Join(dir, res.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, res); err != nil {
		return "", err
	}
	return path, nil
}
