package middlewares

import (
	"context"
	"errors"
	"strings"

	"grestaurants/entity"
	"grestaurants/pkg/resp"
	"grestaurants/services"
	"grestaurants/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const actorKey = "actor"

// UserFinder loads the user named by a token.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// AuthMiddleware checks the Bearer token and loads the acting user from the store
// before the handler runs, so handlers never see a half-resolved user.
func AuthMiddleware(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.Unauthorized(c, "unknown user")
			c.Abort()
			return
		}
		if err != nil {
			resp.Fail(c, services.Persistence(err))
			c.Abort()
			return
		}

		c.Set("userId", user.ID)
		c.Set(actorKey, services.NewActor(user))
		c.Next()
	}
}

// CurrentActor returns the user resolved by AuthMiddleware.
func CurrentActor(c *gin.Context) (services.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return services.Actor{}, false
	}
	a, ok := v.(services.Actor)
	return a, ok
}
