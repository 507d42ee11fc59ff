package graphqltest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	graphqlApi "toolledger.GO/api/graphql"
	toolEntity "toolledger.GO/model/entity/tool"
	"toolledger.GO/service/inventory"
)

func graphqlServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&toolEntity.Tool{}, &toolEntity.Movement{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	e := echo.New()
	graphqlApi.RegisterGraphQLRoutes(e, db)
	return e, db
}

func runQuery(t *testing.T, e *echo.Echo, query string, variables map[string]interface{}) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{"query": query}
	if variables != nil {
		body["variables"] = variables
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /graphql status = %d: %s", rec.Code, rec.Body)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	svc := inventory.NewService(db)
	if _, _, err := svc.CreateTool("wrench", "A1", 10, "alice"); err != nil {
		t.Fatalf("seed wrench: %v", err)
	}
	if _, _, err := svc.CreateTool("hammer", "B2", 3, "alice"); err != nil {
		t.Fatalf("seed hammer: %v", err)
	}
	if _, _, err := svc.ApplyMovement(1, toolEntity.ActionOut, 4, "", "bob"); err != nil {
		t.Fatalf("seed movement: %v", err)
	}
}

func TestGraphQL_ToolByID(t *testing.T) {
	e, db := graphqlServer(t)
	seed(t, db)

	resp := runQuery(t, e, `query($id: ID!) { tool(id: $id) { id name location quantity } }`,
		map[string]interface{}{"id": "1"})
	if resp["errors"] != nil {
		t.Fatalf("errors = %v", resp["errors"])
	}
	tool := resp["data"].(map[string]interface{})["tool"].(map[string]interface{})
	if tool["name"] != "wrench" || tool["quantity"] != float64(6) {
		t.Errorf("tool = %v", tool)
	}
	if tool["id"] != "1" {
		t.Errorf("id = %v, want string \"1\"", tool["id"])
	}
}

func TestGraphQL_ToolMissingIsNull(t *testing.T) {
	e, db := graphqlServer(t)
	seed(t, db)

	resp := runQuery(t, e, `{ tool(id: "999") { id } }`, nil)
	if resp["errors"] != nil {
		t.Fatalf("errors = %v", resp["errors"])
	}
	if resp["data"].(map[string]interface{})["tool"] != nil {
		t.Errorf("missing tool should resolve to null, got %v", resp["data"])
	}
}

func TestGraphQL_ToolsSearch(t *testing.T) {
	e, db := graphqlServer(t)
	seed(t, db)

	resp := runQuery(t, e, `{ tools(search: "wren") { total items { name } } }`, nil)
	if resp["errors"] != nil {
		t.Fatalf("errors = %v", resp["errors"])
	}
	page := resp["data"].(map[string]interface{})["tools"].(map[string]interface{})
	if page["total"] != float64(1) {
		t.Errorf("total = %v, want 1", page["total"])
	}
	items := page["items"].([]interface{})
	if len(items) != 1 || items[0].(map[string]interface{})["name"] != "wrench" {
		t.Errorf("items = %v", items)
	}
}

func TestGraphQL_Movements(t *testing.T) {
	e, db := graphqlServer(t)
	seed(t, db)

	resp := runQuery(t, e, `{ movements(toolId: "1") { total items { action delta operator } } }`, nil)
	if resp["errors"] != nil {
		t.Fatalf("errors = %v", resp["errors"])
	}
	page := resp["data"].(map[string]interface{})["movements"].(map[string]interface{})
	if page["total"] != float64(2) {
		t.Fatalf("total = %v, want 2", page["total"])
	}
	// newest first
	first := page["items"].([]interface{})[0].(map[string]interface{})
	if first["action"] != "OUT" || first["delta"] != float64(-4) || first["operator"] != "bob" {
		t.Errorf("first = %v", first)
	}

	resp = runQuery(t, e, `{ movements(action: "IN") { total } }`, nil)
	page = resp["data"].(map[string]interface{})["movements"].(map[string]interface{})
	if page["total"] != float64(2) {
		t.Errorf("IN total = %v, want 2", page["total"])
	}
}

func TestGraphQL_InvalidActionErrors(t *testing.T) {
	e, db := graphqlServer(t)
	seed(t, db)

	resp := runQuery(t, e, `{ movements(action: "transfer") { total } }`, nil)
	if resp["errors"] == nil {
		t.Error("expected errors for unknown action")
	}
}
