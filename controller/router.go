package controller

import (
	"strings"
	"time"

	"tagcat/app_error"
	"tagcat/auth"
	"tagcat/config"
	"tagcat/service"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const basePath = "/api"

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []string
	Cached        bool
}

type Dependencies struct {
	Config     *config.Config
	Service    *service.TagCategoryService
	CacheStore persistence.CacheStore
	Logger     *zap.Logger
}

func SetRoutes(r *gin.Engine, deps Dependencies) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupTagCategoryController(deps)...)
	cacheTTL := time.Duration(deps.Config.CacheTTLSeconds) * time.Second
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated && deps.Config.AuthEnabled {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(deps.Config.JWTSecret, route.RequiredRoles))
		}
		if route.Cached && deps.CacheStore != nil && cacheTTL > 0 {
			handlerfuncs = append(handlerfuncs, cache.CachePage(deps.CacheStore, cacheTTL, route.HandlerFunc))
		} else {
			handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		}
		r.Handle(route.Method, basePath+route.Path, handlerfuncs...)
	}
}

func AuthMiddleware(secret string, roles []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"message": "Unauthenticated"})
			return
		}
		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"message": "Unauthenticated"})
			return
		}
		if len(roles) == 0 {
			c.Next()
			return
		}
		for _, requiredRole := range roles {
			if claims.HasPermission(requiredRole) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(403, gin.H{"message": "Unauthorized"})
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie("auth"); err == nil {
		return cookie
	}
	return ""
}

// respondError maps err to its status; 500s are logged and hidden behind
// fallback.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	status := app_error.HTTPStatus(err)
	switch status {
	case 404:
		c.JSON(404, gin.H{"message": "Tag category not found"})
	case 500:
		logger.Error(fallback, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(500, gin.H{"message": fallback})
	default:
		app_error.WithHTTPStatus(c, err, status)
	}
}
