package route

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler defines a route that can be registered in an HTTP service.
type Handler struct {
	Method  string
	Path    string
	Handler []gin.HandlerFunc
}

// Register adds h to r. Only the methods the gateway serves are accepted.
func Register(r gin.IRoutes, h *Handler) error {
	switch h.Method {
	case http.MethodGet:
		r.GET(h.Path, h.Handler...)
	case http.MethodPost:
		r.POST(h.Path, h.Handler...)
	case http.MethodPut:
		r.PUT(h.Path, h.Handler...)
	case http.MethodDelete:
		r.DELETE(h.Path, h.Handler...)
	default:
		return fmt.Errorf("unrecognized HTTP method %q for route %s", h.Method, h.Path)
	}
	return nil
}
