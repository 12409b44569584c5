package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fashion-studio/pkg/response"
)

// Module describes a feature module that can register its routes on a RouterGroup
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them under /api. Unknown routes get
// the same JSON envelope as every other error.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use adds middleware that runs for every /api route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.HandleMethodNotAllowed = true
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Abort(c, http.StatusNotFound, "route not found", nil)
	})
	r.Engine.NoMethod(func(c *gin.Context) {
		response.Abort(c, http.StatusMethodNotAllowed, "method not allowed", nil)
	})
}
