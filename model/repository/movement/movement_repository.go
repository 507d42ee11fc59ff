package movement

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	toolEntity "toolledger.GO/model/entity/tool"
)

// Filter narrows and pages a movement listing. Time bounds are half-open:
// From inclusive, To exclusive. Order must come from the query service's
// enumerated sort keys.
type Filter struct {
	ToolID   *uint
	Action   toolEntity.Action
	Operator string
	From     *time.Time
	To       *time.Time
	Order    string
	Limit    int
	Offset   int
}

type MovementRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewMovementRepository(db *gorm.DB) (*MovementRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &MovementRepository{db: db, sqlDB: sqlDB}, nil
}

func (r *MovementRepository) apply(f Filter) *gorm.DB {
	q := r.db.Model(&toolEntity.Movement{})
	if f.ToolID != nil {
		q = q.Where("tool_id = ?", *f.ToolID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Operator != "" {
		q = q.Where("operator LIKE ?", "%"+f.Operator+"%")
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	return q
}

// List returns one page plus the total count matching the filter.
func (r *MovementRepository) List(f Filter) ([]toolEntity.Movement, int64, error) {
	q := r.apply(f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []toolEntity.Movement
	err := q.Order(f.Order).Limit(f.Limit).Offset(f.Offset).Find(&items).Error
	return items, total, err
}

// ListAll returns every movement matching the filter, for exports.
func (r *MovementRepository) ListAll(f Filter) ([]toolEntity.Movement, error) {
	var items []toolEntity.Movement
	err := r.apply(f).Order(f.Order).Find(&items).Error
	return items, err
}

// CountByTool returns the number of movements recorded for a tool.
// Uses raw SQL for minimal overhead on the hot read path.
func (r *MovementRepository) CountByTool(toolID uint) (int64, error) {
	const query = `SELECT COUNT(*) FROM tool_movements WHERE tool_id = ?`
	var n int64
	err := r.sqlDB.QueryRow(query, toolID).Scan(&n)
	return n, err
}

// DeltaSum is one row of the ledger audit aggregate.
type DeltaSum struct {
	ToolID uint
	Total  int64
}

// SumDeltaByTool aggregates the signed deltas per tool across the whole
// ledger. The audit job compares these totals against tools.quantity.
func (r *MovementRepository) SumDeltaByTool() ([]DeltaSum, error) {
	rows, err := r.sqlDB.Query(`SELECT tool_id, COALESCE(SUM(delta), 0) FROM tool_movements GROUP BY tool_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DeltaSum
	for rows.Next() {
		var s DeltaSum
		if err := rows.Scan(&s.ToolID, &s.Total); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
