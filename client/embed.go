// Package client embeds the browser script that connects a wizard page to
// its live session.
package client

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// Script is the file name of the live client.
const Script = "sitewizard.js"

//go:embed src/*.js
var assets embed.FS

var files = mustSub(assets, "src")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Handler serves the embedded scripts by name. Mount it with
// http.StripPrefix. Directory listings are not served.
func Handler() http.Handler {
	fileServer := http.FileServer(http.FS(files))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if !strings.HasSuffix(name, ".js") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fileServer.ServeHTTP(w, r)
	})
}

// ReadFile returns the contents of an embedded script.
func ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(files, name)
}

// FileNames lists the embedded scripts.
func FileNames() []string {
	names, err := fs.Glob(files, "*.js")
	if err != nil {
		return nil
	}
	return names
}
