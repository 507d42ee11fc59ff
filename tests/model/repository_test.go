package modeltest

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	toolEntity "toolledger.GO/model/entity/tool"
	movementRepo "toolledger.GO/model/repository/movement"
	toolRepo "toolledger.GO/model/repository/tool"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// in-memory sqlite is per-connection; keep the pool at one so the raw
	// *sql.DB paths see the same database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&toolEntity.Tool{}, &toolEntity.Movement{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTools(t *testing.T, db *gorm.DB) []toolEntity.Tool {
	t.Helper()
	tools := []toolEntity.Tool{
		{Name: "wrench", Location: "shelf A", Quantity: 10},
		{Name: "hammer", Location: "shelf B", Quantity: 3},
		{Name: "torque wrench", Location: "cabinet", Quantity: 7},
	}
	if err := db.Create(&tools).Error; err != nil {
		t.Fatalf("seed tools: %v", err)
	}
	return tools
}

func TestToolRepository_FindByID(t *testing.T) {
	db := testDB(t)
	seeded := seedTools(t, db)
	repo, err := toolRepo.NewToolRepository(db)
	if err != nil {
		t.Fatalf("NewToolRepository: %v", err)
	}

	found, err := repo.FindByID(seeded[1].ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Name != "hammer" {
		t.Errorf("name = %q, want hammer", found.Name)
	}

	if _, err := repo.FindByID(9999); err == nil {
		t.Error("expected error for missing tool")
	}
}

func TestToolRepository_ListFilterAndPage(t *testing.T) {
	db := testDB(t)
	seedTools(t, db)
	repo, _ := toolRepo.NewToolRepository(db)

	// substring filter matches name or location
	items, total, err := repo.List(toolRepo.Filter{Query: "wrench", Order: "id ASC", Limit: 50})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total=%d len=%d, want 2, 2", total, len(items))
	}

	items, total, err = repo.List(toolRepo.Filter{Query: "shelf", Order: "id ASC", Limit: 50})
	if err != nil {
		t.Fatalf("List by location: %v", err)
	}
	if total != 2 {
		t.Errorf("location filter total = %d, want 2", total)
	}

	// total counts all matches even when the page is smaller
	items, total, err = repo.List(toolRepo.Filter{Order: "quantity DESC", Limit: 2})
	if err != nil {
		t.Fatalf("List page: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("total=%d len=%d, want 3, 2", total, len(items))
	}
	if items[0].Quantity != 10 || items[1].Quantity != 7 {
		t.Errorf("order = %d, %d, want 10, 7", items[0].Quantity, items[1].Quantity)
	}

	items, _, err = repo.List(toolRepo.Filter{Order: "quantity DESC", Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List offset: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Errorf("last page = %v", items)
	}
}

func TestToolRepository_FindByIDsPreservesOrder(t *testing.T) {
	db := testDB(t)
	seeded := seedTools(t, db)
	repo, _ := toolRepo.NewToolRepository(db)

	ids := []uint{seeded[2].ID, seeded[0].ID, 9999}
	items, err := repo.FindByIDs(ids)
	if err != nil {
		t.Fatalf("FindByIDs: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2 (missing id dropped)", len(items))
	}
	if items[0].ID != seeded[2].ID || items[1].ID != seeded[0].ID {
		t.Errorf("order = %d, %d, want %d, %d", items[0].ID, items[1].ID, seeded[2].ID, seeded[0].ID)
	}
}

func TestToolRepository_QuantityByID(t *testing.T) {
	db := testDB(t)
	seeded := seedTools(t, db)
	repo, _ := toolRepo.NewToolRepository(db)

	qty, ok := repo.QuantityByID(seeded[0].ID)
	if !ok || qty != 10 {
		t.Errorf("QuantityByID = %d, %v, want 10, true", qty, ok)
	}
	if _, ok := repo.QuantityByID(9999); ok {
		t.Error("missing tool should report not found")
	}
}

func TestToolRepository_Delete(t *testing.T) {
	db := testDB(t)
	seeded := seedTools(t, db)
	repo, _ := toolRepo.NewToolRepository(db)

	if err := repo.Delete(seeded[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(seeded[0].ID); err != gorm.ErrRecordNotFound {
		t.Errorf("second delete err = %v, want ErrRecordNotFound", err)
	}
}

func seedMovements(t *testing.T, db *gorm.DB, toolID uint) {
	t.Helper()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	movements := []toolEntity.Movement{
		{ToolID: toolID, Action: toolEntity.ActionIn, Delta: 10, Note: "initial stock", Operator: "alice", CreatedAt: base},
		{ToolID: toolID, Action: toolEntity.ActionOut, Delta: -4, Note: "issued", Operator: "bob", CreatedAt: base.Add(24 * time.Hour)},
		{ToolID: toolID, Action: toolEntity.ActionAdjust, Delta: 1, Note: "stocktake", Operator: "alice", CreatedAt: base.Add(48 * time.Hour)},
	}
	if err := db.Create(&movements).Error; err != nil {
		t.Fatalf("seed movements: %v", err)
	}
}

func TestMovementRepository_Filters(t *testing.T) {
	db := testDB(t)
	seeded := seedTools(t, db)
	seedMovements(t, db, seeded[0].ID)
	seedMovements(t, db, seeded[1].ID)
	repo, err := movementRepo.NewMovementRepository(db)
	if err != nil {
		t.Fatalf("NewMovementRepository: %v", err)
	}

	// by tool
	id := seeded[0].ID
	_, total, err := repo.List(movementRepo.Filter{ToolID: &id, Order: "id DESC", Limit: 50})
	if err != nil {
		t.Fatalf("List by tool: %v", err)
	}
	if total != 3 {
		t.Errorf("by tool total = %d, want 3", total)
	}

	// by action
	items, total, err := repo.List(movementRepo.Filter{Action: toolEntity.ActionOut, Order: "id DESC", Limit: 50})
	if err != nil {
		t.Fatalf("List by action: %v", err)
	}
	if total != 2 {
		t.Errorf("by action total = %d, want 2", total)
	}
	for _, m := range items {
		if m.Action != toolEntity.ActionOut {
			t.Errorf("action = %s, want OUT", m.Action)
		}
	}

	// by operator substring
	_, total, err = repo.List(movementRepo.Filter{Operator: "ali", Order: "id DESC", Limit: 50})
	if err != nil {
		t.Fatalf("List by operator: %v", err)
	}
	if total != 4 {
		t.Errorf("by operator total = %d, want 4", total)
	}
}

func TestMovementRepository_TimeRangeHalfOpen(t *testing.T) {
	db := testDB(t)
	seeded := seedTools(t, db)
	seedMovements(t, db, seeded[0].ID)
	repo, _ := movementRepo.NewMovementRepository(db)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// [Mar 1, Mar 2) picks only the first movement
	items, total, err := repo.List(movementRepo.Filter{From: &from, To: &to, Order: "id ASC", Limit: 50})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("total=%d len=%d, want 1, 1", total, len(items))
	}
	if items[0].Action != toolEntity.ActionIn {
		t.Errorf("action = %s, want IN", items[0].Action)
	}

	// a bound equal to a row's timestamp: inclusive on From, exclusive on To
	exact := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, total, err = repo.List(movementRepo.Filter{From: &exact, Order: "id ASC", Limit: 50})
	if err != nil {
		t.Fatalf("List from exact: %v", err)
	}
	if total != 2 {
		t.Errorf("from inclusive total = %d, want 2", total)
	}
	_, total, err = repo.List(movementRepo.Filter{To: &exact, Order: "id ASC", Limit: 50})
	if err != nil {
		t.Fatalf("List to exact: %v", err)
	}
	if total != 1 {
		t.Errorf("to exclusive total = %d, want 1", total)
	}
}

func TestMovementRepository_Aggregates(t *testing.T) {
	db := testDB(t)
	seeded := seedTools(t, db)
	seedMovements(t, db, seeded[0].ID)
	repo, _ := movementRepo.NewMovementRepository(db)

	count, err := repo.CountByTool(seeded[0].ID)
	if err != nil {
		t.Fatalf("CountByTool: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	sums, err := repo.SumDeltaByTool()
	if err != nil {
		t.Fatalf("SumDeltaByTool: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("sums = %v", sums)
	}
	if sums[0].ToolID != seeded[0].ID || sums[0].Total != 7 {
		t.Errorf("sum = %+v, want tool %d total 7", sums[0], seeded[0].ID)
	}
}
