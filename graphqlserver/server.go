package graphqlserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"toolledger.GO/graphql"
	gqlmodels "toolledger.GO/graphql/models"
	"toolledger.GO/graphql/resolvers"
	toolEntity "toolledger.GO/model/entity/tool"
	movementRepo "toolledger.GO/model/repository/movement"
	toolRepo "toolledger.GO/model/repository/tool"
	"toolledger.GO/service/query"
)

// RootResolver is the root for graphql-go. Read-only: mutations go through
// the REST API where they are authenticated and transactional.
type RootResolver struct {
	DB *gorm.DB
}

type ToolArgs struct {
	ID gql.ID
}

func (r *RootResolver) Tool(ctx context.Context, args ToolArgs) (*gqlmodels.Tool, error) {
	id, err := parseID(string(args.ID))
	if err != nil {
		return nil, err
	}
	repo, err := toolRepo.NewToolRepository(r.DB)
	if err != nil {
		return nil, err
	}
	t, err := repo.FindByID(id)
	if err != nil {
		return nil, nil // absent tool resolves to null, not an error
	}
	return resolvers.MapTool(t)
}

type ToolsArgs struct {
	Search *string
	Limit  int32
	Offset int32
}

func (r *RootResolver) Tools(ctx context.Context, args ToolsArgs) (*gqlmodels.ToolPage, error) {
	repo, err := toolRepo.NewToolRepository(r.DB)
	if err != nil {
		return nil, err
	}
	q := ""
	if args.Search != nil {
		q = *args.Search
	}
	items, total, err := repo.List(toolRepo.Filter{
		Query:  q,
		Order:  "id DESC",
		Limit:  query.ClampLimit(int(args.Limit)),
		Offset: query.ClampOffset(int(args.Offset)),
	})
	if err != nil {
		return nil, err
	}

	page := &gqlmodels.ToolPage{Items: make([]*gqlmodels.Tool, 0, len(items)), Total: int32(total)}
	for i := range items {
		m, err := resolvers.MapTool(&items[i])
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, m)
	}
	return page, nil
}

type MovementsArgs struct {
	ToolID *gql.ID
	Action *string
	Limit  int32
	Offset int32
}

func (r *RootResolver) Movements(ctx context.Context, args MovementsArgs) (*gqlmodels.MovementPage, error) {
	repo, err := movementRepo.NewMovementRepository(r.DB)
	if err != nil {
		return nil, err
	}

	f := movementRepo.Filter{
		Order:  "id DESC",
		Limit:  query.ClampLimit(int(args.Limit)),
		Offset: query.ClampOffset(int(args.Offset)),
	}
	if args.ToolID != nil {
		id, err := parseID(string(*args.ToolID))
		if err != nil {
			return nil, err
		}
		f.ToolID = &id
	}
	if args.Action != nil {
		a := toolEntity.Action(*args.Action)
		if !a.IsValid() {
			return nil, fmt.Errorf("unknown action %q", *args.Action)
		}
		f.Action = a
	}

	items, total, err := repo.List(f)
	if err != nil {
		return nil, err
	}

	page := &gqlmodels.MovementPage{Items: make([]*gqlmodels.Movement, 0, len(items)), Total: int32(total)}
	for i := range items {
		m, err := resolvers.MapMovement(&items[i])
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, m)
	}
	return page, nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

// NewSchema parses the schema against the root resolver.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler wraps a schema in the standard relay HTTP handler.
func Handler(schema *gql.Schema) http.Handler {
	return &relay.Handler{Schema: schema}
}
