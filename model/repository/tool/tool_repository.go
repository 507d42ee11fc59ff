package tool

import (
	"database/sql"

	"gorm.io/gorm"

	toolEntity "toolledger.GO/model/entity/tool"
)

// Filter narrows and pages a tool listing. Order must come from the query
// service's enumerated sort keys, never from raw request input.
type Filter struct {
	Query  string
	Order  string
	Limit  int
	Offset int
}

type ToolRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewToolRepository(db *gorm.DB) (*ToolRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &ToolRepository{db: db, sqlDB: sqlDB}, nil
}

func (r *ToolRepository) FindByID(id uint) (*toolEntity.Tool, error) {
	var t toolEntity.Tool
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByIDs fetches tools for a set of IDs, preserving the input order
// (search results come back ranked by relevance).
func (r *ToolRepository) FindByIDs(ids []uint) ([]toolEntity.Tool, error) {
	if len(ids) == 0 {
		return []toolEntity.Tool{}, nil
	}
	var items []toolEntity.Tool
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]toolEntity.Tool, len(items))
	for _, t := range items {
		byID[t.ID] = t
	}
	ordered := make([]toolEntity.Tool, 0, len(items))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// List returns one page plus the total count matching the filter.
func (r *ToolRepository) List(f Filter) ([]toolEntity.Tool, int64, error) {
	q := r.db.Model(&toolEntity.Tool{})
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("name LIKE ? OR location LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []toolEntity.Tool
	err := q.Order(f.Order).Limit(f.Limit).Offset(f.Offset).Find(&items).Error
	return items, total, err
}

// ListAll returns every tool matching the substring filter, for exports.
func (r *ToolRepository) ListAll(query, order string) ([]toolEntity.Tool, error) {
	q := r.db.Model(&toolEntity.Tool{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR location LIKE ?", like, like)
	}
	var items []toolEntity.Tool
	err := q.Order(order).Find(&items).Error
	return items, err
}

// QuantityByID returns the current quantity for a tool.
// Uses raw SQL for minimal overhead on the hot read path.
func (r *ToolRepository) QuantityByID(id uint) (int64, bool) {
	const query = `SELECT quantity FROM tools WHERE id = ? LIMIT 1`
	var qty sql.NullInt64
	if err := r.sqlDB.QueryRow(query, id).Scan(&qty); err != nil || !qty.Valid {
		return 0, false
	}
	return qty.Int64, true
}

func (r *ToolRepository) Delete(id uint) error {
	res := r.db.Delete(&toolEntity.Tool{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
