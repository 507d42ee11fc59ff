//go:build !cli
// +build !cli

package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"toolledger.GO/api"
	authApi "toolledger.GO/api/auth"
	_ "toolledger.GO/api/graphql"
	_ "toolledger.GO/api/movement"
	_ "toolledger.GO/api/tool"
	"toolledger.GO/config"
	"toolledger.GO/core/auth"
	"toolledger.GO/core/token"
	_ "toolledger.GO/custom"
	entity "toolledger.GO/model/entity"
	toolEntity "toolledger.GO/model/entity/tool"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured or not reachable, caching disabled."
	if config.RedisClient != nil {
		err := config.RedisClient.Ping(config.RedisCtx()).Err()
		if err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, caching disabled."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	// Check DB connection
	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	log.Println("Database connection successful.")

	if err := db.AutoMigrate(&entity.User{}, &toolEntity.Tool{}, &toolEntity.Movement{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	tokens := token.NewService(token.ConfigFromEnv())

	e := echo.New()
	e.HTTPErrorHandler = api.HTTPErrorHandler
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, echo.Map{"ok": true})
	})

	authApi.RegisterAuthRoutes(e, db, tokens)

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(db, tokens))
	api.ApplyModules(apiGroup, db)
	api.ApplyRoutes(e, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
