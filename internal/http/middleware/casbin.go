package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HariStrange/drive-Vault/domain"
)

// CasbinMiddleware is anything that yields the role gate handler
type CasbinMiddleware interface {
	Enforce() gin.HandlerFunc
}

// CasbinMW checks (role_<role>, path, method) against the enforcer
type CasbinMW struct {
	enforcer domain.CasbinEnforcer
	audit    domain.AuditLogger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer domain.CasbinEnforcer, audit domain.AuditLogger) *CasbinMW {
	return &CasbinMW{enforcer: enforcer, audit: audit}
}

// Enforce returns the casbin authorization middleware
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		tokenUserID := c.GetString(ContextUserID)
		primaryRole := c.GetString(ContextUserRole)
		if tokenUserID == "" || primaryRole == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID or role not found in token"})
			c.Abort()
			return
		}

		// Always check for x-user-id header mismatch
		headerUserID := c.GetHeader("x-user-id")
		if headerUserID != "" && headerUserID != tokenUserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Header x-user-id does not match token user ID"})
			c.Abort()
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := mw.enforcer.Enforce("role_"+primaryRole, path, method)
		if err != nil {
			log.Printf("EVENT: authz_error role=%s path=%s method=%s error=%q", primaryRole, path, method, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}

		if !allowed {
			mw.denied(c, primaryRole, path, method)
			c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}

func (mw *CasbinMW) denied(c *gin.Context, role, path, method string) {
	if mw.audit == nil {
		return
	}
	id, _ := CurrentUserID(c)
	mw.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, id).
		WithEmail(c.GetString(ContextUserEmail)).
		WithMetadata("role", role).
		WithMetadata("path", path).
		WithMetadata("method", method).
		WithError(domain.ErrInsufficientRole))
}
