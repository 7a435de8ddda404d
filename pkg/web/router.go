package web

import "net/http"

// Router is a ServeMux that renders a page for unmatched GET and HEAD
// requests. Other unmatched methods keep the mux's plain 404/405 replies.
type Router struct {
	mux      *http.ServeMux
	notFound http.HandlerFunc
}

func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// SetFallback sets the page handler for unmatched GET and HEAD requests.
func (r *Router) SetFallback(handler http.HandlerFunc) {
	r.notFound = handler
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.notFound != nil && (req.Method == http.MethodGet || req.Method == http.MethodHead) {
		if _, pattern := r.mux.Handler(req); pattern == "" {
			r.notFound(w, req)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}
