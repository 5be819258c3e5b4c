// Package service bundles what a checkwriter web service needs to handle a
// request: the router it is mounted on, its logger, metrics, configuration
// and any further dependencies.
//
// Handlers receive the Service alongside the gin context, so resources can be
// developed as separate services sharing one router. Routes can be grouped,
// and each group can have its own middleware.
package service

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/checkwriter/config"
	"github.com/remiges-tech/checkwriter/metrics"
)

// Dependencies is a map to hold arbitrary dependencies.
type Dependencies map[string]any

// Service is the core struct for a web service, holding essential components and optional dependencies.
// Note: Assert the type of the dependency before using it because the value is of type any.
//
// Example:
//
//	s := NewService(router).WithLogger(logger).WithDependency("drafts", drafts)
//	drafts, ok := s.Dependencies["drafts"].(*store.Drafts)
type Service struct {
	Config       config.Config
	Router       *gin.Engine
	Logger       *logharbour.Logger
	Metrics      metrics.Metrics
	Dependencies Dependencies
}

// NewService constructs a new Service mounted on r.
func NewService(r *gin.Engine) *Service {
	return &Service{
		Router: r,
	}
}

// WithDependency is a method to inject an arbitrary dependency into the Service.
func (s *Service) WithDependency(key string, value any) *Service {
	if s.Dependencies == nil {
		s.Dependencies = make(Dependencies)
	}
	s.Dependencies[key] = value
	return s
}

// WithLogger is a method to inject a logger dependency into the Service.
func (s *Service) WithLogger(l *logharbour.Logger) *Service {
	s.Logger = l
	return s
}

// WithMetrics is a method to inject a metrics dependency into the Service.
func (s *Service) WithMetrics(m metrics.Metrics) *Service {
	s.Metrics = m
	return s
}

// WithConfig is a method to inject the configuration source into the Service.
func (s *Service) WithConfig(c config.Config) *Service {
	s.Config = c
	return s
}

// HandlerFunc is a function that handles a request.
// It takes a *gin.Context and a *Service as parameters.
type HandlerFunc func(*gin.Context, *Service)

// RegisterRoute registers a single route directly on the service's engine.
func (s *Service) RegisterRoute(method, path string, handler HandlerFunc) error {
	return register(&s.Router.RouterGroup, method, path, s.wrap(handler))
}

func (s *Service) wrap(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		handler(c, s)
	}
}

// RouteGroup is a path prefix whose handlers share one Service.
type RouteGroup struct {
	Group   *gin.RouterGroup
	service *Service
}

// CreateGroup returns a RouteGroup rooted at path.
func (s *Service) CreateGroup(path string) *RouteGroup {
	return &RouteGroup{
		Group:   s.Router.Group(path),
		service: s,
	}
}

// RegisterRoute registers a single route on the route group.
func (g *RouteGroup) RegisterRoute(method, path string, handler HandlerFunc) error {
	return register(g.Group, method, path, g.service.wrap(handler))
}

func register(g *gin.RouterGroup, method, path string, handler gin.HandlerFunc) error {
	switch method {
	case http.MethodGet:
		g.GET(path, handler)
	case http.MethodPost:
		g.POST(path, handler)
	case http.MethodPut:
		g.PUT(path, handler)
	case http.MethodDelete:
		g.DELETE(path, handler)
	default:
		return fmt.Errorf("unsupported method: %s", method)
	}
	return nil
}
