package apitest

import (
	"net/http"
	"strings"
	"testing"
	"time"

	toolEntity "toolledger.GO/model/entity/tool"
)

func TestMovementAPI_ListAndFilters(t *testing.T) {
	e, _ := ledgerTestServer(t)
	createTool(t, e, "wrench", "A1", 10)
	createTool(t, e, "hammer", "B2", 0)

	postJSON(e, "/api/tools/1/movements", map[string]interface{}{"action": "OUT", "delta": 3}, nil)
	postJSON(e, "/api/tools/2/movements", map[string]interface{}{"action": "IN", "delta": 5}, nil)

	rec := getPath(e, "/api/movements")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d: %s", rec.Code, rec.Body)
	}
	resp := decodeJSON(t, rec)
	// initial stock for tool 1 plus the two applied above
	if resp["total"] != float64(3) {
		t.Errorf("total = %v, want 3", resp["total"])
	}
	items := resp["items"].([]interface{})
	first := items[0].(map[string]interface{})
	// default sort is newest first
	if first["action"] != "IN" || first["tool_id"] != float64(2) {
		t.Errorf("first = %v", first)
	}

	rec = getPath(e, "/api/movements?tool_id=1")
	if resp := decodeJSON(t, rec); resp["total"] != float64(2) {
		t.Errorf("tool filter total = %v, want 2", resp["total"])
	}

	rec = getPath(e, "/api/movements?action=OUT")
	if resp := decodeJSON(t, rec); resp["total"] != float64(1) {
		t.Errorf("action filter total = %v, want 1", resp["total"])
	}

	rec = getPath(e, "/api/movements?operator=anon")
	if resp := decodeJSON(t, rec); resp["total"] != float64(3) {
		t.Errorf("operator filter total = %v, want 3", resp["total"])
	}
}

func TestMovementAPI_TimeRange(t *testing.T) {
	e, db := ledgerTestServer(t)
	createTool(t, e, "wrench", "A1", 5)

	// move one row back in time
	old := time.Date(2020, 1, 15, 12, 0, 0, 0, time.UTC)
	if err := db.Model(&toolEntity.Movement{}).Where("id = ?", 1).
		Update("created_at", old).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	postJSON(e, "/api/tools/1/movements", map[string]interface{}{"action": "IN", "delta": 1}, nil)

	rec := getPath(e, "/api/movements?from=2020-01-15&to=2020-01-15&tz=UTC")
	if rec.Code != http.StatusOK {
		t.Fatalf("range status = %d: %s", rec.Code, rec.Body)
	}
	if resp := decodeJSON(t, rec); resp["total"] != float64(1) {
		t.Errorf("range total = %v, want 1", resp["total"])
	}

	rec = getPath(e, "/api/movements?from=2020-01-16")
	if resp := decodeJSON(t, rec); resp["total"] != float64(1) {
		t.Errorf("open-ended total = %v, want 1 (recent row only)", resp["total"])
	}
}

func TestMovementAPI_BadParams(t *testing.T) {
	e, _ := ledgerTestServer(t)

	cases := []struct {
		path string
		code string
	}{
		{"/api/movements?sort=price_asc", "INVALID_SORT"},
		{"/api/movements?action=transfer", "INVALID_ACTION"},
		{"/api/movements?tool_id=abc", "INVALID_BODY"},
		{"/api/movements?from=2026-05-01&to=2026-04-01", "INVALID_RANGE"},
		{"/api/movements?from=garbage", "INVALID_RANGE"},
		{"/api/movements?from=2026-05-01&tz=Nope/Nope", "INVALID_TIMEZONE"},
	}
	for _, tc := range cases {
		rec := getPath(e, tc.path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", tc.path, rec.Code)
			continue
		}
		if resp := decodeJSON(t, rec); resp["code"] != tc.code {
			t.Errorf("%s code = %v, want %s", tc.path, resp["code"], tc.code)
		}
	}
}

func TestMovementAPI_ExportCSV(t *testing.T) {
	e, _ := ledgerTestServer(t)
	createTool(t, e, "wrench", "A1", 10)
	postJSON(e, "/api/tools/1/movements", map[string]interface{}{"action": "OUT", "delta": 2}, nil)

	rec := getPath(e, "/api/movements/export.csv?action=OUT")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d: %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "stock out 2") {
		t.Errorf("export missing OUT row: %q", body)
	}
	if strings.Contains(body, "initial stock") {
		t.Error("filter leaked the IN row into the export")
	}
}
