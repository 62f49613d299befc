package frontmatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	var (
		tests = []string{
			``,
			"---\ntitle: Alpha\n---\nhello",
			"+++\ntitle = \"Alpha\"\n+++\nhello",
			"# just a heading\n\nbody",
			"---\n---\nbody",
		}
		expectTitle = []string{``, `Alpha`, `Alpha`, ``, ``}
		expectBody  = []string{``, `hello`, `hello`, "# just a heading\n\nbody", `body`}
	)
	for i := range tests {
		m, body, err := Parse([]byte(tests[i]))
		if err != nil {
			t.Errorf("%d: unexpected error %v", i, err)
			continue
		}
		title, _ := m.String("title")
		if title != expectTitle[i] {
			t.Errorf("%d: expected title %q but got %q", i, expectTitle[i], title)
		}
		if strings.TrimSpace(string(body)) != expectBody[i] {
			t.Errorf("%d: expected body %q but got %q", i, expectBody[i], string(body))
		}
		if m == nil {
			t.Errorf("%d: matter should never be nil", i)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	doc := []byte("---\ntitle: [unclosed\n---\nbody")

	_, _, err := Parse(doc)
	require.Error(t, err)

	m := Lenient(doc)
	require.NotNil(t, m)
	assert.Empty(t, m)
}

func TestParseUnclosed(t *testing.T) {
	m, _, err := Parse([]byte("---\ndate: 2022-03-01\ntitle: Open\n"))
	require.NoError(t, err)
	assert.Empty(t, m, "an unclosed block is not front matter")
}

func TestParseNested(t *testing.T) {
	doc := []byte("---\ntitle: Nested\nimage:\n  src: /a.png\n  alt: pic\nauthors:\n  - name: Ann\n    links:\n      home: https://ann.example\n  - name: Bo\n---\nbody")

	m, _, err := Parse(doc)
	require.NoError(t, err)

	image, ok := m["image"].(map[string]any)
	require.True(t, ok, "nested mapping should be map[string]any, got %T", m["image"])
	assert.Equal(t, "/a.png", image["src"])

	authors, ok := m["authors"].([]any)
	require.True(t, ok)
	require.Len(t, authors, 2)
	first, ok := authors[0].(map[string]any)
	require.True(t, ok, "list item should be map[string]any, got %T", authors[0])
	assert.Equal(t, "Ann", first["name"])
	links, ok := first["links"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://ann.example", links["home"])

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"src":"/a.png"`)
}

func TestMatterText(t *testing.T) {
	m, _, err := Parse([]byte("---\ntitle: 42\nempty: \"\"\nnothing: null\n---\n"))
	require.NoError(t, err)

	s, ok := m.Text("title")
	assert.True(t, ok)
	assert.Equal(t, "42", s)

	s, ok = m.Text("empty")
	assert.True(t, ok)
	assert.Equal(t, "", s)

	_, ok = m.Text("nothing")
	assert.False(t, ok)

	_, ok = m.Text("missing")
	assert.False(t, ok)
}

func TestMatterTime(t *testing.T) {
	m := Matter{
		"date":    "2022-03-01",
		"bad":     "not a date",
		"number":  12,
		"already": time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	d, ok := m.Time("date", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, ok = m.Time("already", time.UTC)
	require.True(t, ok)
	assert.Equal(t, 2020, d.Year())

	for _, key := range []string{"bad", "number", "missing"} {
		_, ok = m.Time(key, time.UTC)
		assert.False(t, ok, key)
	}
}
