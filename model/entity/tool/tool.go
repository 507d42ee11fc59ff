package tool

import "time"

// Tool is one catalog row with its current stock quantity. Quantity is only
// ever changed through the ledger engine's computed delta; every change is
// paired with exactly one Movement row in the same transaction.
type Tool struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);index;not null" json:"name"`
	Location  string    `gorm:"column:location;type:varchar(255);not null;default:unknown" json:"location"`
	Quantity  int64     `gorm:"column:quantity;not null;default:0" json:"quantity"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Tool) TableName() string {
	return "tools"
}
