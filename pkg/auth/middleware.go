package auth

import (
	"net/http"
	"strings"

	"hotelbooking/pkg/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by the middleware for downstream handlers.
const (
	CtxUserID   = "userID"
	CtxUserUid  = "userUid"
	CtxUsername = "username"
	CtxTokenID  = "tokenID"
	CtxTokenExp = "tokenExp"
)

// Middleware authenticates requests with a Bearer token and loads the
// acting user. Unauthenticated requests are aborted with 401.
func Middleware(db *gorm.DB, secret []byte, blocklist *Blocklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identify(c, db, secret, blocklist) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// Optional resolves the identity when a valid token is present but lets
// anonymous requests through. Detail pages use it to show the caller's
// own reservations alongside public data.
func Optional(db *gorm.DB, secret []byte, blocklist *Blocklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		identify(c, db, secret, blocklist)
		c.Next()
	}
}

func identify(c *gin.Context, db *gorm.DB, secret []byte, blocklist *Blocklist) bool {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	claims, err := ParseToken(raw, secret)
	if err != nil {
		return false
	}
	if blocklist != nil && blocklist.Revoked(claims.ID) {
		return false
	}

	var user models.User
	if err := db.Where("user_uid = ?", claims.Subject).First(&user).Error; err != nil {
		return false
	}

	c.Set(CtxUserID, user.ID)
	c.Set(CtxUserUid, user.UserUid)
	c.Set(CtxUsername, user.Username)
	c.Set(CtxTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(CtxTokenExp, claims.ExpiresAt.Time)
	}
	return true
}
