package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsDocumentOrder(t *testing.T) {
	r := NewResults("ollama", []string{"products", "issues", "contacts"}, 3)
	r.Items["products"] = []any{"Widget"}
	r.Items["contacts"] = []any{"Ada"}

	out, err := r.Marshal()
	require.NoError(t, err)
	doc := string(out)

	metaIdx := strings.Index(doc, "extraction_metadata:")
	productsIdx := strings.Index(doc, "products:")
	issuesIdx := strings.Index(doc, "issues:")
	contactsIdx := strings.Index(doc, "contacts:")

	require.GreaterOrEqual(t, metaIdx, 0)
	assert.Less(t, metaIdx, productsIdx)
	assert.Less(t, productsIdx, issuesIdx)
	assert.Less(t, issuesIdx, contactsIdx)

	assert.Contains(t, doc, "model_used: ollama")
	assert.Contains(t, doc, "total_documents: 3")
	// a category with no findings still appears, as an empty list
	assert.Contains(t, doc, "issues: []")
}

func TestResultsRoundTrip(t *testing.T) {
	r := NewResults("openai", []string{"products"}, 1)
	r.Items["products"] = []any{"Widget", "Gadget"}

	out, err := r.Marshal()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, []any{"Widget", "Gadget"}, decoded["products"])

	meta, ok := decoded["extraction_metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "openai", meta["model_used"])
}

func TestResultsWriteFileCreatesDirectory(t *testing.T) {
	r := NewResults("ollama", []string{"products"}, 0)
	path := filepath.Join(t.TempDir(), "nested", "out.yaml")

	require.NoError(t, r.WriteFile(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "extraction_metadata:")
}

func TestItemCounts(t *testing.T) {
	r := NewResults("ollama", []string{"products", "issues"}, 0)
	r.Items["products"] = []any{"a", "b"}

	counts := r.ItemCounts()
	assert.Equal(t, map[string]int{"products": 2, "issues": 0}, counts)
}
