package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner replays canned command results keyed by binary name.
type stubRunner struct {
	stdout map[string]string
	errs   map[string]error
	calls  []string
	// onRun lets a test create side effects, e.g. rendered page files
	onRun func(name string, args []string)
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, name)
	if s.onRun != nil {
		s.onRun(name, args)
	}
	if err := s.errs[name]; err != nil {
		return nil, []byte("boom"), err
	}
	return []byte(s.stdout[name]), nil, nil
}

func newTestExtractor(r Runner) *Extractor {
	e := NewExtractor(Config{}, nil)
	e.runner = r
	return e
}

func TestExtractPDFPrefersTextLayer(t *testing.T) {
	r := &stubRunner{stdout: map[string]string{
		"pdftotext": "page one body\fpage two body",
	}}
	e := newTestExtractor(r)

	res, err := e.ExtractPDF(context.Background(), "in.pdf")
	require.NoError(t, err)

	assert.Equal(t, "pdf-text", res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Contains(t, res.Text, "page one body")
	assert.Equal(t, []string{"pdftotext"}, r.calls)
}

func TestExtractPDFFallsBackToOCR(t *testing.T) {
	r := &stubRunner{
		stdout: map[string]string{
			"pdftotext": "   \f  ", // text layer present but blank
			"tesseract": "scanned page text",
		},
	}
	r.onRun = func(name string, args []string) {
		if name != "pdftoppm" {
			return
		}
		// pdftoppm writes <prefix>-N.png; the prefix is the last arg
		prefix := args[len(args)-1]
		for i := 1; i <= 2; i++ {
			require.NoError(t, os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), []byte("png"), 0o644))
		}
	}
	e := newTestExtractor(r)

	res, err := e.ExtractPDF(context.Background(), "scanned.pdf")
	require.NoError(t, err)

	assert.Equal(t, "pdf-ocr", res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "scanned page text\n\f\nscanned page text", res.Text)
	assert.Equal(t, []string{"pdftotext", "pdftoppm", "tesseract", "tesseract"}, r.calls)
}

func TestExtractPDFReportsRenderFailure(t *testing.T) {
	r := &stubRunner{
		errs: map[string]error{
			"pdftotext": errors.New("exit status 1"),
			"pdftoppm":  errors.New("exit status 1"),
		},
	}
	e := newTestExtractor(r)

	_, err := e.ExtractPDF(context.Background(), "broken.pdf")
	require.Error(t, err)
}

func TestExtractImage(t *testing.T) {
	r := &stubRunner{stdout: map[string]string{
		"tesseract": "INVOICE 42\nTotal: 10.00",
	}}
	e := newTestExtractor(r)

	res, err := e.ExtractImage(context.Background(), "scan.png")
	require.NoError(t, err)

	assert.Equal(t, "image-ocr", res.Method)
	assert.True(t, strings.Contains(res.Text, "INVOICE 42"))
}
