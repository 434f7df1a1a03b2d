package authorization

import (
	"github.com/gin-gonic/gin"
)

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("user_role")
		if userRole != string(RoleAdmin) {
			c.JSON(403, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireReviewer rejects requests from roles that never resolve approval
// steps. Per-step approver checks still happen in the workflow core.
func RequireReviewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseUserRole(c.GetString("user_role"))
		if !role.CanReview() {
			c.JSON(403, gin.H{
				"error": "reviewer access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

type OwnedResource interface {
	GetOwnerID() uint
}

func CanAccessResource(userID uint, userRole UserRole, resource OwnedResource) bool {
	if userRole.IsAdmin() {
		return true
	}
	return userID == resource.GetOwnerID()
}
