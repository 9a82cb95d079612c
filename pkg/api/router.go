package api

import (
	"net/http"
)

// Router dispatches on exact method and path. Anything unmatched, including
// a known path with the wrong method, is a plain-text 404.
type Router struct {
	routes map[string]http.HandlerFunc
}

// NewRouter creates an empty router.
func NewRouter() (rt *Router) {
	rt = &Router{
		routes: make(map[string]http.HandlerFunc),
	}
	return rt
}

// Handle registers handler for method and path.
func (rt *Router) Handle(method, path string, handler http.HandlerFunc) {
	rt.routes[method+" "+path] = handler
}

// GET registers a GET handler.
func (rt *Router) GET(path string, handler http.HandlerFunc) {
	rt.Handle(http.MethodGet, path, handler)
}

// POST registers a POST handler.
func (rt *Router) POST(path string, handler http.HandlerFunc) {
	rt.Handle(http.MethodPost, path, handler)
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, ok := rt.routes[r.Method+" "+r.URL.Path]
	if !ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not found"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	handler(w, r)
}

// Routes registers every endpoint on a new router.
func Routes(h *Handlers) (rt *Router) {
	rt = NewRouter()
	rt.GET("/health", h.Health)
	rt.POST("/generate", h.Generate)
	rt.POST("/parse-resume", h.ParseResume)
	rt.POST("/parse-job-link", h.ParseJobLink)
	rt.POST("/generate-pdf", h.GeneratePDF)
	return rt
}
