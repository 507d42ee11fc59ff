package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"toolledger.GO/config"
	"toolledger.GO/core/apperr"
	"toolledger.GO/core/token"
	entity "toolledger.GO/model/entity"
	userRepo "toolledger.GO/model/repository/user"
)

// ContextKeyUser is where the middleware stores the resolved *entity.User.
const ContextKeyUser = "user"

// Middleware returns bearer-token auth middleware. The token is parsed into
// a username which must resolve to an existing user; handlers downstream only
// ever see the authenticated operator, never the raw token.
func Middleware(db *gorm.DB, tokens *token.Service) echo.MiddlewareFunc {
	skipper := buildSkipper()
	users := userRepo.NewUserRepository(db)

	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: skipper,
		Validator: func(tok string, c echo.Context) (bool, error) {
			username, err := tokens.Parse(tok)
			if err != nil {
				return false, apperr.Unauthorized(apperr.CodeInvalidToken, "invalid token")
			}
			u, err := users.FindByUsername(username)
			if err != nil {
				return false, apperr.Unauthorized(apperr.CodeUserNotFound, "user not found")
			}
			c.Set(ContextKeyUser, u)
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			if _, ok := apperr.From(err); ok {
				return err
			}
			return apperr.Unauthorized(apperr.CodeNotAuthenticated, "not authenticated")
		},
	})
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

// CurrentUser returns the operator resolved by Middleware. Routes mounted
// without the middleware (tests, internal tooling) see the anonymous user.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	if u, ok := c.Get(ContextKeyUser).(*entity.User); ok {
		return u, true
	}
	return &entity.User{Username: "anonymous"}, false
}
