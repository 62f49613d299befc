// Package blog builds the blog navigation from a directory of Markdown documents.
package blog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ancientlore/toybox/content"
	"github.com/ancientlore/toybox/frontmatter"
)

// NavEntry is one link of the blog navigation.
type NavEntry struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// document is a file selected for the listing.
type document struct {
	Name    string
	Created time.Time
}

type options struct {
	ext    string
	prefix string
	loc    *time.Location
}

// Option customizes ListDocuments.
type Option func(*options)

// WithExtension sets the extension that selects documents. The default is ".md".
func WithExtension(ext string) Option {
	return func(o *options) { o.ext = ext }
}

// WithLinkPrefix sets the path the links are rooted at. The default is "/blog".
func WithLinkPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithLocation sets the time zone dates are shown in. The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

// ListDocuments returns one NavEntry per document in src, newest first.
// Any I/O or front matter error fails the whole listing.
func ListDocuments(src content.Source, opts ...Option) ([]NavEntry, error) {
	o := options{ext: ".md", prefix: "/blog", loc: time.Local}
	for _, opt := range opts {
		opt(&o)
	}

	names, err := src.ListFiles()
	if err != nil {
		return nil, fmt.Errorf("ListDocuments: %w", err)
	}
	docs := make([]document, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(name, o.ext) {
			continue
		}
		created, err := src.StatCreationTime(name)
		if err != nil {
			return nil, fmt.Errorf("ListDocuments: %w", err)
		}
		docs = append(docs, document{Name: name, Created: created})
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[j].Created.Before(docs[i].Created) })

	r := make([]NavEntry, 0, len(docs))
	for _, doc := range docs {
		b, err := src.ReadContents(doc.Name)
		if err != nil {
			return nil, fmt.Errorf("ListDocuments: %w", err)
		}
		fm, _, err := frontmatter.Parse(b)
		if err != nil {
			return nil, fmt.Errorf("ListDocuments: %s: %w", doc.Name, err)
		}
		stem := strings.TrimSuffix(doc.Name, o.ext)
		title, ok := fm.Text("title")
		if !ok {
			title = stem
		}
		r = append(r, NavEntry{
			Text: fmt.Sprintf("(%s) %s", formatDate(doc.Created.In(o.loc)), title),
			Link: strings.TrimSuffix(o.prefix, "/") + "/" + stem,
		})
	}
	return r, nil
}

// formatDate renders t as year-month-day without zero padding.
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}
