package models

import graphql "github.com/graph-gophers/graphql-go"

// Tool is the GraphQL view of a tool row. Filled from the entity via
// mapstructure (numeric IDs become strings, timestamps become RFC3339).
type Tool struct {
	ID        graphql.ID `mapstructure:"id"`
	Name      string     `mapstructure:"name"`
	Location  string     `mapstructure:"location"`
	Quantity  int32      `mapstructure:"quantity"`
	UpdatedAt string     `mapstructure:"updatedat"`
}

// Movement is the GraphQL view of one ledger entry.
type Movement struct {
	ID        graphql.ID `mapstructure:"id"`
	ToolID    graphql.ID `mapstructure:"toolid"`
	Action    string     `mapstructure:"action"`
	Delta     int32      `mapstructure:"delta"`
	Note      string     `mapstructure:"note"`
	Operator  string     `mapstructure:"operator"`
	CreatedAt string     `mapstructure:"createdat"`
}

// ToolPage is one page of tools plus the filtered total.
type ToolPage struct {
	Items []*Tool
	Total int32
}

// MovementPage is one page of movements plus the filtered total.
type MovementPage struct {
	Items []*Movement
	Total int32
}
