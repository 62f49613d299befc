package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ancientlore/toybox/cache"
	"github.com/ancientlore/toybox/site"
	"github.com/ancientlore/toybox/web"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Names of the cached listings.
const (
	listNav     = "nav"
	listPosts   = "posts"
	listFriends = "friends"
	listMenu    = "menu"
	listSitemap = "sitemap"
)

// server answers the listings of a site from the cache.
type server struct {
	site  *site.Site
	fsys  fs.FS
	cache *cache.Group
	log   logrus.FieldLogger
}

func newServer(s *site.Site, fsys fs.FS, cacheSize int64, cacheDuration time.Duration, log logrus.FieldLogger) *server {
	srv := &server{
		site: s,
		fsys: fsys,
		log:  log,
	}
	srv.cache = cache.New("listings-"+uuid.NewString(), cacheSize, cacheDuration, srv.load)
	return srv
}

// load encodes the named listing.
func (srv *server) load(ctx context.Context, name string) ([]byte, error) {
	srv.log.WithField("listing", name).Debug("loading")
	var (
		v   any
		err error
	)
	switch name {
	case listNav:
		v, err = srv.site.Nav()
	case listPosts:
		v, err = srv.site.Posts(ctx)
	case listFriends:
		v, err = srv.site.Friends()
	case listMenu:
		v = srv.site.Menu()
	case listSitemap:
		urls, err := srv.site.Sitemap(ctx)
		if err != nil {
			return nil, err
		}
		return []byte(strings.Join(urls, "\n") + "\n"), nil
	default:
		return nil, fmt.Errorf("load: unknown listing %q", name)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// listing is a handler serving the named listing with the given content type.
func (srv *server) listing(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := srv.cache.Get(r.Context(), name)
		if err != nil {
			web.ServerError(w, r, srv.log, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		if _, err = w.Write(b); err != nil {
			srv.log.WithError(err).WithField("listing", name).Warn("write failed")
		}
	}
}

// handler returns the routes wrapped with the site headers, expiry and compression.
func (srv *server) handler() http.Handler {
	const jsonType = "application/json; charset=utf-8"
	mux := http.NewServeMux()
	mux.Handle("GET /api/nav", srv.listing(listNav, jsonType))
	mux.Handle("GET /api/posts", srv.listing(listPosts, jsonType))
	mux.Handle("GET /api/friends", srv.listing(listFriends, jsonType))
	mux.Handle("GET /api/menu", srv.listing(listMenu, jsonType))
	mux.Handle("GET /sitemap.txt", srv.listing(listSitemap, "text/plain; charset=utf-8"))
	mux.HandleFunc("GET /favicon.ico", srv.favicon)

	cfg := srv.site.Config()
	var h http.Handler = web.ErrorHandler(mux)
	h = gziphandler.GzipHandler(h)
	h = web.ExpiresHandler(h, time.Duration(cfg.Expires), time.Duration(cfg.StaticExpires))
	return web.HeaderHandler(h, cfg.Headers)
}
