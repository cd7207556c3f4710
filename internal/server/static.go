package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// staticAssets maps UI routes to files under the web asset directory.
var staticAssets = []struct {
	route string
	file  string
	mime  string
}{
	{"GET /{$}", "index.html", "text/html; charset=utf-8"},
	{"GET /style.css", "style.css", "text/css; charset=utf-8"},
	{"GET /code.js", "code.js", "application/javascript; charset=utf-8"},
	{"GET /favicon.ico", "favicon.ico", "image/x-icon"},
}

// RegisterStatic mounts the browser UI routes on mux, serving files from
// dir. Missing asset files answer 404 per request rather than failing
// startup.
func RegisterStatic(mux *http.ServeMux, dir string) {
	for _, asset := range staticAssets {
		path := filepath.Join(dir, asset.file)
		mime := asset.mime
		mux.HandleFunc(asset.route, func(w http.ResponseWriter, r *http.Request) {
			data, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("static asset unavailable", "path", path, "error", err)
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", mime)
			w.Write(data)
		})
	}
}
