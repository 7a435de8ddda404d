// Package routes declares route groups and registers them on a ServeMux.
package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/metalid/pkg/openapi"
)

// Group organizes routes under a common prefix with shared OpenAPI tags.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		walk("", group, func(path string, r Route, _ []string) {
			mux.HandleFunc(r.Method+" "+path, r.Handler)
		})
	}
}

// Document adds every documented route in groups to spec, prefixing paths
// with basePath. Routes without an OpenAPI operation are skipped.
func Document(spec *openapi.Spec, basePath string, groups ...Group) {
	for _, group := range groups {
		walk(basePath, group, func(path string, r Route, tags []string) {
			if r.OpenAPI == nil {
				return
			}

			op := *r.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = tags
			}
			spec.AddOperation(specPath(path), r.Method, &op)
		})
	}
}

func walk(parent string, group Group, fn func(path string, r Route, tags []string)) {
	prefix := parent + group.Prefix
	for _, r := range group.Routes {
		fn(prefix+r.Pattern, r, group.Tags)
	}
	for _, child := range group.Children {
		if len(child.Tags) == 0 {
			child.Tags = group.Tags
		}
		walk(prefix, child, fn)
	}
}

// specPath converts ServeMux wildcards such as {key...} and {$} into
// OpenAPI path syntax.
func specPath(path string) string {
	path = strings.ReplaceAll(path, "{$}", "")
	path = strings.ReplaceAll(path, "...}", "}")
	if path == "" {
		return "/"
	}
	return path
}
