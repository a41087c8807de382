// Package tasksrepobridge exposes tasks over HTTP.
package tasksrepobridge

import (
	"github.com/jrazmi/taskmanagement/infrastructure/web"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Middleware []web.Middleware
}

// AddHttpRoutes registers the task routes on group. The group must run
// mid.Session so that handlers find a storage session in the context.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log)

	group.GET("/task", b.httpList, cfg.Middleware...)
	group.POST("/task", b.httpUpsert, cfg.Middleware...)
	group.PUT("/task/{id}", b.httpReplace, cfg.Middleware...)
	group.DELETE("/task", b.httpDelete, cfg.Middleware...)
}
