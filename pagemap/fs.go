package pagemap

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ancientlore/toybox/frontmatter"
)

// pageExtensions are the document types that become pages.
var pageExtensions = []string{".md", ".mdx"}

// FS builds the page map from a content tree. Files named "index" or "page"
// are the page of their folder.
type FS struct {
	fsys fs.FS
	root string
	log  logrus.FieldLogger
}

// NewFS returns a Provider over folder root of fsys. A nil log uses the standard logger.
func NewFS(fsys fs.FS, root string, log logrus.FieldLogger) *FS {
	if root == "" {
		root = "."
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FS{fsys: fsys, root: path.Clean(root), log: log}
}

// PageMap walks the content tree.
func (p *FS) PageMap(ctx context.Context) ([]Item, error) {
	items, err := p.folder(ctx, p.root, "/")
	if err != nil {
		return nil, fmt.Errorf("PageMap: %w", err)
	}
	return items, nil
}

func (p *FS) folder(ctx context.Context, dir, route string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(p.fsys, dir)
	if err != nil {
		return nil, err
	}
	var items []Item
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			children, err := p.folder(ctx, path.Join(dir, name), path.Join(route, name))
			if err != nil {
				return nil, err
			}
			it := Item{Name: name, Route: path.Join(route, name), Children: children, folder: true}
			for _, child := range children {
				if child.Name == "index" && !child.IsFolder() {
					it.FrontMatter = child.FrontMatter
					it.Body = child.Body
					break
				}
			}
			items = append(items, it)
			continue
		}
		ext := path.Ext(name)
		if !isPage(ext) {
			continue
		}
		stem := strings.TrimSuffix(name, ext)
		it := Item{Name: stem, Route: path.Join(route, stem)}
		if stem == "index" || stem == "page" {
			it.Name, it.Route = "index", route
		}
		it.FrontMatter, it.Body, err = p.read(path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// read loads a page. Malformed front matter is logged and treated as absent
// so a single bad page cannot break a listing.
func (p *FS) read(name string) (frontmatter.Matter, []byte, error) {
	b, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return nil, nil, err
	}
	fm, body, err := frontmatter.Parse(b)
	if err != nil {
		p.log.WithField("page", name).WithError(err).Warn("ignoring front matter")
		return frontmatter.Lenient(b), b, nil
	}
	return fm, body, nil
}

func isPage(ext string) bool {
	for _, e := range pageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
