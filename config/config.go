/*
Package config reads the site settings from "toybox.toml" at the root of the site.

	title = "Young's Toy Box"
	baseurl = "https://wesley-young.github.io"
	blogdir = "blog"           # documents listed in the blog navigation
	extension = ".md"
	linkprefix = "/blog"
	contentdir = "app"         # content tree the page map is built from
	postsroute = "/posts"
	exclude = ["index", "posts", "friends"]
	friends = "friends.toml"
	expires = "5m"             # Expires for API responses
	staticexpires = "1h"       # Expires for everything else

	[headers]
	X-Frame-Options = "DENY"

	[[menu]]
	label = "Posts"
	href = "/posts"

	[[menu]]
	label = "GitHub"
	href = "https://github.com/Wesley-Young"

A missing file yields the defaults. Unknown keys are rejected.
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the name of the settings file at the site root.
const FileName = "toybox.toml"

// Config contains the site settings.
type Config struct {
	Title         string            `toml:"title"`
	BaseURL       string            `toml:"baseurl"`
	BlogDir       string            `toml:"blogdir"`
	Extension     string            `toml:"extension"`
	LinkPrefix    string            `toml:"linkprefix"`
	ContentDir    string            `toml:"contentdir"`
	PostsRoute    string            `toml:"postsroute"`
	Exclude       []string          `toml:"exclude"`
	Friends       string            `toml:"friends"`
	Expires       Duration          `toml:"expires"`
	StaticExpires Duration          `toml:"staticexpires"`
	Headers       map[string]string `toml:"headers"`
	Menu          []MenuItem        `toml:"menu"`
}

// MenuItem is a link of the site menu.
type MenuItem struct {
	Label  string `toml:"label" json:"label"`
	Href   string `toml:"href" json:"href"`
	Target string `toml:"target" json:"target,omitempty"`
	Rel    string `toml:"rel" json:"rel,omitempty"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Title:      "Young's Toy Box",
		BlogDir:    "blog",
		Extension:  ".md",
		LinkPrefix: "/blog",
		ContentDir: "app",
		PostsRoute: "/posts",
		Exclude:    []string{"index", "posts", "friends"},
		Friends:    "friends.toml",
		Menu: []MenuItem{
			{Label: "Home", Href: "/"},
			{Label: "Posts", Href: "/posts"},
		},
	}
}

// Load reads the named settings file from fsys over the defaults.
// It is not an error if the file does not exist.
func Load(fsys fs.FS, name string) (*Config, error) {
	cfg := Default()
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("Cannot read config file: %w", err)
	}
	// lists in the file replace the defaults rather than extend them
	cfg.Menu, cfg.Exclude = nil, nil
	d := toml.NewDecoder(bytes.NewReader(b))
	d.DisallowUnknownFields()
	if err = d.Decode(cfg); err != nil {
		return nil, fmt.Errorf("Cannot parse config file: %w", err)
	}
	def := Default()
	if cfg.Menu == nil {
		cfg.Menu = def.Menu
	}
	if cfg.Exclude == nil {
		cfg.Exclude = def.Exclude
	}
	if err = cfg.validate(); err != nil {
		return nil, fmt.Errorf("Invalid config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BlogDir == "" {
		return errors.New("blogdir must not be empty")
	}
	if c.Extension == "" {
		return errors.New("extension must not be empty")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("baseurl %q is not an absolute URL", c.BaseURL)
		}
	}
	for i, m := range c.Menu {
		if m.Label == "" || m.Href == "" {
			return fmt.Errorf("menu item %d needs a label and an href", i)
		}
	}
	return nil
}

// MenuItems returns the menu with external links opening in a new tab.
func (c *Config) MenuItems() []MenuItem {
	items := make([]MenuItem, len(c.Menu))
	for i, m := range c.Menu {
		if u, err := url.Parse(m.Href); err == nil && u.IsAbs() {
			if m.Target == "" {
				m.Target = "_blank"
			}
			if m.Rel == "" {
				m.Rel = "noopener noreferrer"
			}
		}
		items[i] = m
	}
	return items
}
