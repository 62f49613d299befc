// Package site answers the listings of a site: the blog navigation,
// the posts collection, the friends list, the menu and the site map.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ancientlore/toybox/blog"
	"github.com/ancientlore/toybox/config"
	"github.com/ancientlore/toybox/content"
	"github.com/ancientlore/toybox/friends"
	"github.com/ancientlore/toybox/pagemap"
	"github.com/ancientlore/toybox/posts"
	"github.com/sirupsen/logrus"
)

// Site holds the sources of the listings.
type Site struct {
	cfg   *config.Config
	blog  content.Source
	fsys  fs.FS
	pages pagemap.Provider
	log   logrus.FieldLogger
}

// New returns a Site reading blog documents from blogSrc, and the page map
// and friends file from fsys. A nil log uses the standard logger.
func New(cfg *config.Config, blogSrc content.Source, fsys fs.FS, log logrus.FieldLogger) *Site {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Site{
		cfg:   cfg,
		blog:  blogSrc,
		fsys:  fsys,
		pages: pagemap.NewFS(fsys, cfg.ContentDir, log),
		log:   log,
	}
}

// Open loads the settings file of the site at root and returns the Site.
// An empty configFile uses config.FileName at root.
func Open(root, configFile string, log logrus.FieldLogger) (*Site, error) {
	cfg, err := LoadConfig(root, configFile)
	if err != nil {
		return nil, err
	}
	return New(cfg, content.Dir(filepath.Join(root, filepath.FromSlash(cfg.BlogDir))), os.DirFS(root), log), nil
}

// LoadConfig reads configFile, or config.FileName at root when it is empty.
func LoadConfig(root, configFile string) (*config.Config, error) {
	if configFile == "" {
		configFile = filepath.Join(root, config.FileName)
	}
	dir, name := filepath.Split(configFile)
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(os.DirFS(dir), name)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}
	return cfg, nil
}

// Config returns the site settings.
func (s *Site) Config() *config.Config {
	return s.cfg
}

// Paths returns the local folders and files the listings are read from.
func (s *Site) Paths(root string) []string {
	return []string{
		filepath.Join(root, filepath.FromSlash(s.cfg.BlogDir)),
		filepath.Join(root, filepath.FromSlash(s.cfg.ContentDir)),
		filepath.Join(root, filepath.FromSlash(s.cfg.Friends)),
	}
}

// Nav lists the blog documents, newest first.
func (s *Site) Nav() ([]blog.NavEntry, error) {
	nav, err := blog.ListDocuments(s.blog,
		blog.WithExtension(s.cfg.Extension),
		blog.WithLinkPrefix(s.cfg.LinkPrefix))
	if err != nil {
		return nil, fmt.Errorf("Nav: %w", err)
	}
	if nav == nil {
		nav = []blog.NavEntry{}
	}
	return nav, nil
}

// Posts resolves the posts collection, newest first.
func (s *Site) Posts(ctx context.Context) ([]posts.Entry, error) {
	r, err := posts.Resolve(ctx, s.pages, posts.Options{
		Route:   s.cfg.PostsRoute,
		Exclude: s.cfg.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("Posts: %w", err)
	}
	if r == nil {
		r = []posts.Entry{}
	}
	return r, nil
}

// Friends loads the friends list. A site without one has an empty list.
func (s *Site) Friends() ([]friends.Friend, error) {
	f, err := friends.Load(s.fsys, s.cfg.Friends)
	if err != nil {
		return nil, fmt.Errorf("Friends: %w", err)
	}
	if f == nil {
		f = []friends.Friend{}
	}
	return f, nil
}

// Menu returns the site menu.
func (s *Site) Menu() []config.MenuItem {
	return s.cfg.MenuItems()
}

// Sitemap returns the URLs of the site: its home, the blog documents and the posts.
func (s *Site) Sitemap(ctx context.Context) ([]string, error) {
	nav, err := s.Nav()
	if err != nil {
		return nil, fmt.Errorf("Sitemap: %w", err)
	}
	entries, err := s.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("Sitemap: %w", err)
	}
	base := strings.TrimSuffix(s.cfg.BaseURL, "/")
	urls := make([]string, 0, 1+len(nav)+len(entries))
	urls = append(urls, base+"/")
	for _, n := range nav {
		urls = append(urls, base+n.Link)
	}
	for _, e := range entries {
		urls = append(urls, base+e.Route)
	}
	return urls, nil
}
