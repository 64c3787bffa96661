package dictfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/ports"
)

// =============================================================================
// Dictionary files: YAML/JSON documents fed to the dynamic loaders
// =============================================================================

func writeDict(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ObjectYAML(t *testing.T) {
	path := writeDict(t, "cities.yaml", "New York:\n  - big apple\n  - nyc\nBay Area: [bay area]\n")

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, KindObject, d.Kind)
	assert.Equal(t, path, d.Path)

	p := keyword.New(false)
	require.NoError(t, d.Apply(p))
	assert.Equal(t, "I love New York and Bay Area.", p.ReplaceKeywords("I love Big Apple and bay area."))
}

func TestLoad_ListJSON(t *testing.T) {
	path := writeDict(t, "langs.json", `["java", "product manager"]`)

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, KindList, d.Kind)
	assert.Equal(t, "list", d.Kind.String())

	p := keyword.New(false)
	require.NoError(t, d.Apply(p))
	assert.Equal(t, []string{"product manager", "java"}, p.ExtractKeywords("I am a product manager for a java platform"))
}

func TestLoad_ObjectJSON_KeepsExistingKeywords(t *testing.T) {
	path := writeDict(t, "langs.json", `{"java": ["java_2e", "java programming"], "python": ["python2.7"]}`)

	d, err := Load(path)
	require.NoError(t, err)

	p := keyword.New(false)
	p.AddKeyword("go", "")
	require.NoError(t, d.Apply(p))
	assert.Equal(t, 4, p.Len())
	assert.True(t, p.Contains("go"))

	clean, ok := p.GetKeyword("java programming")
	require.True(t, ok)
	assert.Equal(t, "java", clean)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := writeDict(t, "broken.yaml", "key: [unclosed\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestApply_ShapeErrors(t *testing.T) {
	cases := map[string]string{
		"scalar document":       "just a string\n",
		"empty document":        "",
		"value not a list":      "java: java_2e\n",
		"number inside list":    "java: [java, 2]\n",
		"nested list in a list": "- [java]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			d, err := Parse([]byte(doc))
			require.NoError(t, err)

			p := keyword.New(false)
			err = d.Apply(p)
			require.Error(t, err)
			var shapeErr *keyword.ShapeError
			assert.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, 0, p.Len())
		})
	}
}

func TestEntries_Normalized(t *testing.T) {
	d, err := Parse([]byte("New York: [Big Apple, NYC]\n"))
	require.NoError(t, err)

	entries, err := d.Entries(false)
	require.NoError(t, err)
	assert.Equal(t, []ports.Entry{
		{Keyword: "big apple", CleanName: "New York"},
		{Keyword: "nyc", CleanName: "New York"},
	}, entries)

	entries, err = d.Entries(true)
	require.NoError(t, err)
	assert.Equal(t, []ports.Entry{
		{Keyword: "Big Apple", CleanName: "New York"},
		{Keyword: "NYC", CleanName: "New York"},
	}, entries)

	keywords, err := d.Keywords(false)
	require.NoError(t, err)
	assert.Equal(t, []string{"big apple", "nyc"}, keywords)
}

func TestEntries_ClashMatchesApply(t *testing.T) {
	d, err := Parse([]byte("beta: [shared]\nalpha: [shared]\n"))
	require.NoError(t, err)

	entries, err := d.Entries(false)
	require.NoError(t, err)
	assert.Equal(t, []ports.Entry{{Keyword: "shared", CleanName: "beta"}}, entries)
}
