package http

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tourbook/docs"
	"tourbook/internal/interfaces/http/middleware"
	"tourbook/internal/interfaces/http/routes"
)

func (c *Container) setupRoutes() {
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.RequestLogger(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	if c.cfg.Server.Mode != "release" {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	c.engine.GET("/health", c.healthCheck)

	routes.SetupPermissionRoutes(c.engine, &routes.PermissionRouteConfig{
		PermissionHandler:    c.permissionHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		WriteRateLimit:       c.writeRateLimit,
	})
}
