package web

import (
	"io/fs"
	"net/http"
)

// DistServer serves files from subdir of fsys, stripping urlPrefix from the request path.
// It panics when subdir cannot be opened, which only happens for a bad embed directive.
func DistServer(fsys fs.FS, subdir, urlPrefix string) http.Handler {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		panic("failed to create sub-filesystem: " + err.Error())
	}
	return http.StripPrefix(urlPrefix, http.FileServer(http.FS(sub)))
}
