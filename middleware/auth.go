package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orenolabs/academy-board/models"
	"github.com/orenolabs/academy-board/repository"
	"github.com/orenolabs/academy-board/utils"
)

const (
	// ContextProfileKey stores the authenticated *models.Profile in Gin context.
	ContextProfileKey = "current_profile"
	// ContextTokenKey stores the raw bearer token for logout blacklisting.
	ContextTokenKey = "bearer_token"
)

// AuthRequired ensures the request is authenticated via JWT and resolves the
// acting profile once per request. The role comes from the profile row, not
// the token, so role changes apply without re-login.
func AuthRequired(profiles repository.ProfileRepository) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(tokenString) {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		profile, err := profiles.Get(claims.UserID)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40106, "account no longer exists")
			ctx.Abort()
			return
		}

		ctx.Set(ContextProfileKey, profile)
		ctx.Set(ContextTokenKey, tokenString)
		ctx.Next()
	}
}

// CurrentProfile returns the authenticated profile set by AuthRequired, or nil
// for anonymous requests.
func CurrentProfile(ctx *gin.Context) *models.Profile {
	value, exists := ctx.Get(ContextProfileKey)
	if !exists {
		return nil
	}
	profile, ok := value.(*models.Profile)
	if !ok {
		return nil
	}
	return profile
}
