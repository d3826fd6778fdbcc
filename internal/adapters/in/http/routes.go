package http

import (
	"strconv"

	"lastmile/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware counts finished requests by method, route path and
// response status.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			metrics.HTTPRequests.WithLabelValues(
				c.Request().Method, path, strconv.Itoa(c.Response().Status),
			).Inc()

			return err
		}
	}
}

// RegisterRoutes wires the driver and dispatch endpoints. Driver routes
// require a valid token; the dispatch snapshot additionally requires the
// admin role.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", AuthMiddleware(jwtSecret))

	driver := api.Group("/driver")
	driver.POST("/deliver", s.Deliver)
	driver.POST("/fail", s.Fail)
	driver.POST("/arrive", s.Arrive)
	driver.POST("/position", s.Position)

	dispatch := api.Group("/dispatch", RequireRole(RoleAdmin))
	dispatch.GET("/snapshot", s.Snapshot)
}
