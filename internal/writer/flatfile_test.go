package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jdlsoft/it3t-filing/internal/genfile"
	"github.com/jdlsoft/it3t-filing/internal/models"
)

func testResult() *genfile.Result {
	return &genfile.Result{
		Filename: "I3T_1_1517179642_ABC_20240915T103045_B2BSFG.txt",
		Content:  "H|GH|header\nT|1|hash|0.00",
		Trust: models.Trust{
			TrustName:         "Example Family Trust",
			SubmissionTaxYear: "2024",
		},
	}
}

func TestSubmissionDir(t *testing.T) {
	w := &FlatFileWriter{OutputDir: "IT3(t)"}
	got := w.SubmissionDir(testResult())
	want := filepath.Join("IT3(t)", "2024", "Example_Family_Trust")
	if got != want {
		t.Errorf("SubmissionDir() = %q, want %q", got, want)
	}
}

func TestSubmissionDirFallsBackToCurrentYear(t *testing.T) {
	w := &FlatFileWriter{OutputDir: "out"}
	res := testResult()
	res.Trust.SubmissionTaxYear = ""
	got := w.SubmissionDir(res)
	if got == filepath.Join("out", "", "Example_Family_Trust") {
		t.Errorf("empty tax year not substituted: %q", got)
	}
}

func TestWrite(t *testing.T) {
	w := &FlatFileWriter{}
	var buf bytes.Buffer
	if err := w.Write(&buf, testResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != "H|GH|header\nT|1|hash|0.00" {
		t.Errorf("unexpected written content: %q", buf.String())
	}
}

func TestWriteRejectsNonLatin1(t *testing.T) {
	w := &FlatFileWriter{}
	res := testResult()
	res.Content = "H|GH|☃"
	if err := w.Write(&bytes.Buffer{}, res); err == nil {
		t.Error("expected an error for non-Latin-1 content")
	}
}

func TestWriteToFile(t *testing.T) {
	w := &FlatFileWriter{OutputDir: t.TempDir()}
	res := testResult()

	path, err := w.WriteToFile(res)
	if err != nil {
		t.Fatalf("WriteToFile failed: %v", err)
	}

	if filepath.Base(path) != res.Filename {
		t.Errorf("unexpected file name %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("written file unreadable: %v", err)
	}
	if string(data) != res.Content {
		t.Errorf("unexpected file content: %q", data)
	}
}
