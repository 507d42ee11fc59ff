package graphql

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"toolledger.GO/api"
	"toolledger.GO/graphqlserver"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

// RegisterGraphQLRoutes mounts the read-only GraphQL endpoint on the root
// instance (public, like the health probe).
func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB) {
	schema, err := graphqlserver.NewSchema(db)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	h := echo.WrapHandler(graphqlserver.Handler(schema))
	e.POST("/graphql", h)
	e.GET("/graphql", h)
}
