package tool

import "time"

// Action is the closed set of movement kinds. Only the three string values
// below ever cross the boundary; anything else is rejected before the ledger
// engine runs.
type Action string

const (
	ActionIn     Action = "IN"
	ActionOut    Action = "OUT"
	ActionAdjust Action = "ADJUST"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionIn, ActionOut, ActionAdjust:
		return true
	}
	return false
}

// Movement is an append-only record of one quantity change. Delta is the
// signed change actually applied, independent of how the request expressed
// it ("OUT 3" stores -3). Rows are never updated or deleted; deleting a Tool
// keeps its movements as historical record.
type Movement struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ToolID    uint      `gorm:"column:tool_id;index;not null" json:"tool_id"`
	Action    Action    `gorm:"column:action;type:varchar(16);not null" json:"action"`
	Delta     int64     `gorm:"column:delta;not null" json:"delta"`
	Note      string    `gorm:"column:note;type:varchar(500)" json:"note"`
	Operator  string    `gorm:"column:operator;type:varchar(64);index;not null" json:"operator"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Movement) TableName() string {
	return "tool_movements"
}
