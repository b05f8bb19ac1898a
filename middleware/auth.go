package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

// AuthMiddleware extracts the authenticated identity set by the upstream
// gateway. Token verification happens there; handlers only ever see an
// explicit user id and email.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetHeader("X-User-ID"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Set(UserEmailKey, c.GetHeader("X-User-Email"))
		c.Next()
	}
}

func GetUserID(c *gin.Context) primitive.ObjectID {
	if val, exists := c.Get(UserIDKey); exists {
		return val.(primitive.ObjectID)
	}
	return primitive.NilObjectID
}

func GetUserEmail(c *gin.Context) string {
	if val, exists := c.Get(UserEmailKey); exists {
		return val.(string)
	}
	return ""
}
