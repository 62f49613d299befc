package posts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancientlore/toybox/frontmatter"
	"github.com/ancientlore/toybox/pagemap"
)

func postsFolder(children ...pagemap.Item) pagemap.Static {
	return pagemap.Static{{Name: "posts", Route: "/posts", Children: children}}
}

func page(name, date string) pagemap.Item {
	it := pagemap.Item{Name: name, Route: "/posts/" + name, FrontMatter: frontmatter.Matter{}}
	if date != "" {
		it.FrontMatter["date"] = date
	}
	return it
}

func routes(entries []Entry) []string {
	var r []string
	for _, e := range entries {
		r = append(r, e.Name)
	}
	return r
}

func TestResolveScenario(t *testing.T) {
	p := postsFolder(
		page("index", ""),
		page("posts", ""),
		page("friends", ""),
		page("hello-world", "2022-03-01"),
	)

	got, err := Resolve(context.Background(), p, Options{Location: time.UTC})
	require.NoError(t, err)
	require.Equal(t, []string{"hello-world"}, routes(got))
	assert.Equal(t, time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, "/posts/hello-world", got[0].Route)
}

func TestResolveExcludedAnywhere(t *testing.T) {
	p := postsFolder(
		page("a", "2020-01-01"),
		page("friends", "2030-01-01"),
		page("b", "2021-01-01"),
		page("index", "2031-01-01"),
		page("posts", ""),
	)

	got, err := Resolve(context.Background(), p, Options{Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, routes(got))
}

func TestResolveCustomExclude(t *testing.T) {
	p := postsFolder(page("index", "2020-01-01"), page("drafts", "2021-01-01"))

	got, err := Resolve(context.Background(), p, Options{Exclude: []string{"drafts"}, Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, []string{"index"}, routes(got))

	got, err = Resolve(context.Background(), p, Options{Exclude: []string{}, Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, []string{"drafts", "index"}, routes(got))
}

func TestResolveInvalidDatesLast(t *testing.T) {
	p := postsFolder(
		page("undated-1", ""),
		page("old", "2019-05-01"),
		page("garbage", "someday soon"),
		page("new", "2024-02-29T10:00:00Z"),
		page("undated-2", ""),
		page("mid", "2021-03-03 10:00:00"),
	)
	p[0].Children = append(p[0].Children, pagemap.Item{Name: "no-matter", Route: "/posts/no-matter"})

	got, err := Resolve(context.Background(), p, Options{Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old", "undated-1", "garbage", "undated-2", "no-matter"}, routes(got))

	seenInvalid := false
	for _, e := range got {
		if !e.HasDate() {
			seenInvalid = true
		} else if seenInvalid {
			t.Errorf("%s has a valid date but follows an undated post", e.Name)
		}
	}
}

func TestResolveTimeValues(t *testing.T) {
	older := page("older", "")
	older.FrontMatter["date"] = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	p := postsFolder(older, page("newer", "2002-01-01"))

	got, err := Resolve(context.Background(), p, Options{Location: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, []string{"newer", "older"}, routes(got))
}

func TestResolveProviderError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Resolve(ctx, pagemap.Static{}, Options{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestResolveUnknownRoute(t *testing.T) {
	got, err := Resolve(context.Background(), postsFolder(page("a", "")), Options{Route: "/articles"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"app/index.md":                  {Data: []byte("---\ntitle: Home\n---\n")},
		"app/posts/page.md":             {Data: []byte("---\ntitle: Posts\n---\n")},
		"app/posts/hello-world/page.md": {Data: []byte("---\ntitle: Hello World\ndate: 2022-03-01\n---\n\n# Hi\n\nThe very *first* post.\n\nSecond paragraph.")},
		"app/posts/later.md":            {Data: []byte("---\ntitle: Later\ndate: 2023-01-01\ndescription: Given.\n---\nbody")},
		"app/posts/bad.md":              {Data: []byte("---\ntitle: [\n---\nStill listed.")},
		"app/posts/toml.md":             {Data: []byte("+++\ntitle = \"Toml\"\ndate = 2022-06-01\n+++\n")},
	}
	provider := pagemap.NewFS(fsys, "app", nil)

	got, err := Resolve(context.Background(), provider, Options{Location: time.UTC})
	require.NoError(t, err)
	require.Equal(t, []string{"later", "toml", "hello-world", "bad"}, routes(got))

	assert.Equal(t, "Later", got[0].Title)
	assert.Equal(t, "Given.", got[0].Description)
	assert.Equal(t, "Toml", got[1].Title)
	assert.Equal(t, "Hello World", got[2].Title)
	assert.Equal(t, "The very first post.", got[2].Description)
	assert.Equal(t, "bad", got[3].Title)
	assert.Equal(t, "/posts/bad", got[3].Route)
	assert.False(t, got[3].HasDate())
}

func TestExcerpt(t *testing.T) {
	var (
		tests = []string{
			"",
			"# Only a heading",
			"Intro   line one.\n\nNext.",
			"Some `code` and a [link](http://example.com).",
			strings.Repeat("word ", 100),
		}
		expect = []string{
			"",
			"",
			"Intro line one.",
			"Some code and a link.",
			strings.TrimSpace(strings.Repeat("word ", 6)) + "…",
		}
	)
	for i := range tests {
		if got := excerpt([]byte(tests[i]), 30); got != expect[i] {
			t.Errorf("%d: expected %q but got %q", i, expect[i], got)
		}
	}
}
