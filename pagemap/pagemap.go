// Package pagemap models the hierarchical map of a site's routable pages.
package pagemap

import (
	"context"
	"path"
	"strings"

	"github.com/ancientlore/toybox/frontmatter"
)

// Item is a page or a folder of the page map. Folders have children and
// carry the front matter of their own index page, if any.
type Item struct {
	Name        string             `json:"name"`
	Route       string             `json:"route"`
	FrontMatter frontmatter.Matter `json:"frontMatter,omitempty"`
	Children    []Item             `json:"children,omitempty"`
	Body        []byte             `json:"-"`
	folder      bool
}

// IsFolder reports whether the item is a folder.
func (it Item) IsFolder() bool {
	return it.folder || len(it.Children) > 0
}

// Provider supplies a page map.
type Provider interface {
	PageMap(ctx context.Context) ([]Item, error)
}

// Static is a Provider over a fixed list.
type Static []Item

// PageMap returns the list.
func (s Static) PageMap(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Normalize returns the directory-level entries for route: the items
// directly under the folder at route. For "/" that is the top-level list.
// An unknown route yields no entries.
func Normalize(list []Item, route string) []Item {
	route = cleanRoute(route)
	if route == "/" {
		return list
	}
	for _, it := range list {
		r := cleanRoute(it.Route)
		switch {
		case r == route && it.IsFolder():
			return it.Children
		case it.IsFolder() && strings.HasPrefix(route, strings.TrimSuffix(r, "/")+"/"):
			return Normalize(it.Children, route)
		}
	}
	return nil
}

func cleanRoute(r string) string {
	return path.Clean("/" + r)
}
