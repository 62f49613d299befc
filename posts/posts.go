// Package posts resolves the collection of blog posts from a page map.
package posts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ancientlore/toybox/frontmatter"
	"github.com/ancientlore/toybox/pagemap"
)

// DefaultExclude names the special pages that are never posts.
var DefaultExclude = []string{"index", "posts", "friends"}

// Entry is a post of the collection.
type Entry struct {
	Name        string             `json:"name"`
	Route       string             `json:"route"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Date        time.Time          `json:"date"`
	FrontMatter frontmatter.Matter `json:"frontMatter"`
}

// HasDate reports whether the post declared a date that could be parsed.
func (e Entry) HasDate() bool {
	return !e.Date.IsZero()
}

// Options controls Resolve.
type Options struct {
	Route    string         // Route of the posts folder; defaults to "/posts"
	Exclude  []string       // Names to leave out; nil means DefaultExclude
	Location *time.Location // Zone for dates without one; defaults to time.Local
}

// Resolve returns the posts under opts.Route, newest first. Posts without
// a valid date are kept and sorted after all dated posts. Only a failure of
// the provider is an error.
func Resolve(ctx context.Context, p pagemap.Provider, opts Options) ([]Entry, error) {
	if opts.Route == "" {
		opts.Route = "/posts"
	}
	if opts.Exclude == nil {
		opts.Exclude = DefaultExclude
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	list, err := p.PageMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("Resolve: %w", err)
	}

	var r []Entry
	for _, it := range pagemap.Normalize(list, opts.Route) {
		if excluded[it.Name] {
			continue
		}
		r = append(r, newEntry(it, opts.Location))
	}
	sortByDate(r)
	return r, nil
}

func newEntry(it pagemap.Item, loc *time.Location) Entry {
	fm := it.FrontMatter
	if fm == nil {
		fm = frontmatter.Matter{}
	}
	e := Entry{
		Name:        it.Name,
		Route:       it.Route,
		Title:       it.Name,
		FrontMatter: fm,
	}
	if t, ok := fm.Text("title"); ok {
		e.Title = t
	}
	if d, ok := fm.String("description"); ok {
		e.Description = d
	} else {
		e.Description = excerpt(it.Body, excerptLength)
	}
	if d, ok := fm.Time("date", loc); ok {
		e.Date = d
	}
	return e
}

// sortByDate sorts newest first with undated entries last, in their original order.
func sortByDate(f []Entry) {
	sort.SliceStable(f, func(i, j int) bool {
		if !f[i].HasDate() || !f[j].HasDate() {
			return f[i].HasDate() && !f[j].HasDate()
		}
		return f[j].Date.Before(f[i].Date)
	})
}
