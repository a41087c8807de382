// Package usersrepobridge exposes users over HTTP.
package usersrepobridge

import (
	"github.com/jrazmi/taskmanagement/infrastructure/web"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

// Config holds configuration for the User bridge
type Config struct {
	Log        *logger.Logger
	Middleware []web.Middleware
}

// AddHttpRoutes registers the user routes on group. The group must run
// mid.Session.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log)

	group.GET("/user", b.httpList, cfg.Middleware...)
	group.POST("/user", b.httpUpsert, cfg.Middleware...)
	group.PUT("/user/{id}", b.httpReplace, cfg.Middleware...)
	group.DELETE("/user", b.httpDelete, cfg.Middleware...)
}
