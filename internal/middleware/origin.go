package middleware

import (
	"slices"
	"strings"

	"github.com/aouiniamine/bookmarks/internal/metrics"
	"github.com/labstack/echo/v4"
)

const (
	allowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowHeaders = "Content-Type"
)

// OriginPolicy allows exact origins plus https preview deployments whose host
// ends with PreviewSuffix.
type OriginPolicy struct {
	Allowed       []string
	PreviewSuffix string
}

func (p OriginPolicy) Allows(origin string) bool {
	if origin == "" {
		return false
	}
	if slices.Contains(p.Allowed, origin) {
		return true
	}
	return p.PreviewSuffix != "" &&
		strings.HasPrefix(origin, "https://") &&
		strings.HasSuffix(origin, p.PreviewSuffix)
}

// CORS echoes back allowed origins. Rejected origins are logged and get no
// Access-Control-Allow-Origin header; the request itself is still served.
// Preflight requests reach the route like any other method.
func CORS(policy OriginPolicy, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			h := c.Response().Header()

			if policy.Allows(origin) {
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
				h.Add(echo.HeaderVary, echo.HeaderOrigin)
				m.OriginChecks.WithLabelValues("allowed").Inc()
			} else {
				c.Logger().Warnf("request from non-allowed origin: %q", origin)
				m.OriginChecks.WithLabelValues("rejected").Inc()
			}
			h.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
			return next(c)
		}
	}
}
