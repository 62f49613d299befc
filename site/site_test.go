package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/ancientlore/toybox/blog"
	"github.com/ancientlore/toybox/config"
	"github.com/ancientlore/toybox/content"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noon(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func testSite(t *testing.T) *Site {
	t.Helper()
	fsys := fstest.MapFS{
		"blog/a.md":               {Data: []byte("---\ntitle: Alpha\n---\n"), ModTime: noon(2023, 1, 1)},
		"blog/b.md":               {Data: []byte("no front matter"), ModTime: noon(2024, 6, 15)},
		"app/index.md":            {Data: []byte("---\ntitle: Home\n---\n")},
		"app/posts/page.md":       {Data: []byte("---\ntitle: Posts\n---\n")},
		"app/posts/hello/page.md": {Data: []byte("---\ntitle: Hello\ndate: 2022-03-01\n---\nFirst.")},
		"app/posts/friends.md":    {Data: []byte("---\ntitle: Friends\n---\n")},
		"friends.toml":            {Data: []byte("[[friend]]\ntitle = \"Alice\"\nlink = \"https://alice.example\"\n")},
	}
	cfg := config.Default()
	cfg.BaseURL = "https://example.com/"
	log, _ := test.NewNullLogger()
	return New(cfg, content.NewFS(fsys, cfg.BlogDir), fsys, log)
}

func TestListings(t *testing.T) {
	s := testSite(t)
	ctx := context.Background()

	nav, err := s.Nav()
	require.NoError(t, err)
	assert.Equal(t, []blog.NavEntry{
		{Text: "(2024-6-15) b", Link: "/blog/b"},
		{Text: "(2023-1-1) Alpha", Link: "/blog/a"},
	}, nav)

	entries, err := s.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/posts/hello", entries[0].Route)

	f, err := s.Friends()
	require.NoError(t, err)
	require.Len(t, f, 1)
	assert.Equal(t, "Alice", f[0].Title)

	assert.Equal(t, config.Default().MenuItems(), s.Menu())

	urls, err := s.Sitemap(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/",
		"https://example.com/blog/b",
		"https://example.com/blog/a",
		"https://example.com/posts/hello",
	}, urls)
}

func TestEmptyListings(t *testing.T) {
	fsys := fstest.MapFS{"blog": {Mode: os.ModeDir}}
	s := New(config.Default(), content.NewFS(fsys, "blog"), fsys, nil)

	nav, err := s.Nav()
	require.NoError(t, err)
	assert.NotNil(t, nav)
	assert.Empty(t, nav)

	f, err := s.Friends()
	require.NoError(t, err)
	assert.NotNil(t, f)
	assert.Empty(t, f)
}

func TestNavError(t *testing.T) {
	fsys := fstest.MapFS{
		"blog/bad.md": {Data: []byte("---\ntitle: [\n---\n")},
	}
	s := New(config.Default(), content.NewFS(fsys, "blog"), fsys, nil)
	_, err := s.Nav()
	assert.ErrorContains(t, err, "bad.md")
}

func TestOpen(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("blogdir = \"notes\"\nlinkprefix = \"/notes\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes", "one.md"), []byte("---\ntitle: One\n---\n"), 0o644))

	s, err := Open(root, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "notes", s.Config().BlogDir)
	assert.Equal(t, []string{
		filepath.Join(root, "notes"),
		filepath.Join(root, "app"),
		filepath.Join(root, "friends.toml"),
	}, s.Paths(root))

	nav, err := s.Nav()
	require.NoError(t, err)
	require.Len(t, nav, 1)
	assert.Equal(t, "/notes/one", nav[0].Link)
	assert.Contains(t, nav[0].Text, "One")

	_, err = Open(root, filepath.Join(root, "missing", "nothing.toml"), nil)
	assert.NoError(t, err, "a missing settings file uses the defaults")
}
