package main

import (
	"net/http"
)

// favicon serves static/favicon.ico from the site root.
func (srv *server) favicon(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, srv.fsys, "static/favicon.ico")
}
