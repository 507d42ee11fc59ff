package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"

	"toolledger.GO/config"
)

// Config carries the signing settings. Built once at startup and passed to
// NewService, so there is no mutable global secret.
type Config struct {
	Secret        string
	ExpireMinutes int
}

// ConfigFromEnv reads SECRET_KEY and ACCESS_TOKEN_EXPIRE_MINUTES.
func ConfigFromEnv() Config {
	minutes, err := strconv.Atoi(config.GetEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "120"))
	if err != nil || minutes <= 0 {
		minutes = 120
	}
	return Config{
		Secret:        config.GetEnv("SECRET_KEY", "dev_secret"),
		ExpireMinutes: minutes,
	}
}

// Service issues and validates bearer tokens bound to a username.
type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Issue signs an HS256 token with the username as subject.
func (s *Service) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   username,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Duration(s.cfg.ExpireMinutes) * time.Minute).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.Secret))
}

// Parse validates a token and returns the bound username.
func (s *Service) Parse(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.StandardClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return claims.Subject, nil
}
