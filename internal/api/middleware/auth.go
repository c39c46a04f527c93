// server/internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"community-health-api-server/internal/auth"
	"community-health-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

// LandingPath is the public, role-neutral entry point.
const LandingPath = "/"

// roleNamespaces is the declarative routing policy: each role owns exactly
// one restricted top-level namespace. Cross-namespace access is always
// redirected, never answered with an error.
var roleNamespaces = map[string]string{
	models.RolePatient:  "/p",
	models.RoleProvider: "/d",
	models.RoleNGO:      "/n",
}

// DashboardPath returns the dashboard a role is redirected to. Empty for
// roles outside the closed set.
func DashboardPath(role string) string {
	ns, ok := roleNamespaces[role]
	if !ok {
		return ""
	}
	return ns + "/dashboard"
}

func inRestrictedNamespace(path string) bool {
	for _, ns := range roleNamespaces {
		if path == ns || strings.HasPrefix(path, ns+"/") {
			return true
		}
	}
	return false
}

// ownsNamespace reports whether the given namespace contains the path.
func ownsNamespace(ns, path string) bool {
	return path == ns || strings.HasPrefix(path, ns+"/")
}

// RoleGate is the single chokepoint deciding, per request, whether the caller
// may proceed. Unauthenticated callers are bounced off restricted namespaces
// back to the landing path; authenticated callers are kept inside their own
// namespace and pushed off the role-neutral landing path onto their
// dashboard. It is stateless and mutates nothing but the redirect decision.
func RoleGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		var role string
		if token := auth.TokenFromRequest(c.Request); token != "" {
			if claims, err := auth.ParseToken(token); err == nil {
				role = claims.Role
			}
		}

		// Rule 1: no valid role, restricted namespace.
		if role == "" {
			if inRestrictedNamespace(path) {
				c.Redirect(http.StatusTemporaryRedirect, LandingPath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		ns, ok := roleNamespaces[role]
		if !ok {
			// Unreachable with the closed role set; pass through.
			c.Next()
			return
		}

		// Rule 2: authenticated callers stay inside their namespace. The
		// landing path is role-neutral and also redirects to the dashboard.
		if path == LandingPath || (inRestrictedNamespace(path) && !ownsNamespace(ns, path)) {
			c.Redirect(http.StatusTemporaryRedirect, DashboardPath(role))
			c.Abort()
			return
		}

		c.Next()
	}
}

// Authenticate validates the session token and puts the caller's identity
// into the request context. Protected actions abort here before any store
// mutation can happen.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Unauthorized user"})
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Invalid or expired token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}
