package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Registry collects modules and mounts them under /api in the order they were added.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	registered  bool
	logger      *logrus.Logger
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// WithLogger enables a log line per mounted module.
func (r *Registry) WithLogger(l *logrus.Logger) *Registry {
	r.logger = l
	return r
}

// Use adds middleware that runs for every /api route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// AddIf adds mod only when enabled is true.
func (r *Registry) AddIf(enabled bool, mod Module) {
	if enabled {
		r.Add(mod)
	}
}

// Modules returns the names of the added modules.
func (r *Registry) Modules() []string {
	names := make([]string, 0, len(r.modules))
	for _, m := range r.modules {
		names = append(names, m.Name())
	}
	return names
}

// RegisterAll mounts every module once; later calls are no-ops.
func (r *Registry) RegisterAll() {
	if r.registered {
		return
	}
	r.registered = true
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
		if r.logger != nil {
			r.logger.WithField("module", m.Name()).Info("module registered")
		}
	}
}
