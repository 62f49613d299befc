// Package friends loads the link-exchange list shown on the friends page.
package friends

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Friend is a linked site.
type Friend struct {
	Title       string `toml:"title" yaml:"title" json:"title"`
	Description string `toml:"description" yaml:"description" json:"description"`
	AvatarURL   string `toml:"avatarUrl" yaml:"avatarUrl" json:"avatarUrl"`
	Link        string `toml:"link" yaml:"link" json:"link"`
}

// file is the on-disk layout: a list of friend tables.
type file struct {
	Friends []Friend `toml:"friend" yaml:"friends"`
}

// Validate checks the required fields of f.
func (f Friend) Validate() error {
	if f.Title == "" {
		return errors.New("missing title")
	}
	if f.Link == "" {
		return errors.New("missing link")
	}
	u, err := url.Parse(f.Link)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("link %q is not an absolute http(s) URL", f.Link)
	}
	if f.AvatarURL != "" {
		if u, err := url.Parse(f.AvatarURL); err != nil || !u.IsAbs() {
			return fmt.Errorf("avatarUrl %q is not an absolute URL", f.AvatarURL)
		}
	}
	return nil
}

// Load reads the friends list from the named file of fsys. The format follows
// the extension: ".toml" uses [[friend]] tables, ".yaml" and ".yml" a "friends" list.
// A missing file is an empty list.
func Load(fsys fs.FS, name string) ([]Friend, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("Load: %w", err)
	}
	var f file
	switch path.Ext(name) {
	case ".toml":
		d := toml.NewDecoder(bytes.NewReader(b))
		d.DisallowUnknownFields()
		err = d.Decode(&f)
	case ".yaml", ".yml":
		d := yaml.NewDecoder(bytes.NewReader(b))
		d.KnownFields(true)
		err = d.Decode(&f)
	default:
		err = fmt.Errorf("unsupported format %q", path.Ext(name))
	}
	if err != nil {
		return nil, fmt.Errorf("Load %s: %w", name, err)
	}
	for i, friend := range f.Friends {
		if err := friend.Validate(); err != nil {
			return nil, fmt.Errorf("Load %s: friend %d: %w", name, i, err)
		}
	}
	return f.Friends, nil
}
