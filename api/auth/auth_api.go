package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"toolledger.GO/core/apperr"
	"toolledger.GO/core/password"
	"toolledger.GO/core/token"
	entity "toolledger.GO/model/entity"
	userRepo "toolledger.GO/model/repository/user"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterAuthRoutes mounts the public /auth endpoints. Called explicitly
// from main because the routes share the server's token service.
func RegisterAuthRoutes(e *echo.Echo, db *gorm.DB, tokens *token.Service) {
	users := userRepo.NewUserRepository(db)
	g := e.Group("/auth")

	g.POST("/register", func(c echo.Context) error {
		var body credentials
		if err := c.Bind(&body); err != nil {
			return apperr.BadRequest(apperr.CodeInvalidBody, "invalid request body")
		}
		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return apperr.BadRequest(apperr.CodeInvalidBody, "username and password are required")
		}
		if password.TooLong(body.Password) {
			return apperr.BadRequest(apperr.CodePasswordTooLong, "password exceeds the 72-byte bcrypt limit")
		}

		// friendly pre-check; the unique index is the real guard
		if _, err := users.FindByUsername(body.Username); err == nil {
			return apperr.Conflict(apperr.CodeUsernameExists, "username already exists")
		}

		hash, err := password.Hash(body.Password)
		if err != nil {
			return err
		}
		u := entity.User{Username: body.Username, PasswordHash: hash}
		if err := users.Create(&u); err != nil {
			// concurrent registration can still race the unique index
			if userRepo.IsDuplicate(err) {
				return apperr.Conflict(apperr.CodeUsernameExists, "username already exists")
			}
			return err
		}
		return c.JSON(http.StatusCreated, echo.Map{"ok": true})
	})

	g.POST("/login", func(c echo.Context) error {
		var body credentials
		if err := c.Bind(&body); err != nil {
			return apperr.BadRequest(apperr.CodeInvalidBody, "invalid request body")
		}

		u, err := users.FindByUsername(body.Username)
		if err != nil || !password.Compare(u.PasswordHash, body.Password) {
			return apperr.Unauthorized(apperr.CodeInvalidCredentials, "wrong username or password")
		}

		tok, err := tokens.Issue(u.Username)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, tokenResponse{AccessToken: tok, TokenType: "bearer"})
	})
}
