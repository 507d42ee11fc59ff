// Package inventory ties the ledger engine to persistence. Every quantity
// change updates the tool row and appends exactly one movement row inside a
// single transaction; both commit or both roll back.
package inventory

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"toolledger.GO/core/apperr"
	toolEntity "toolledger.GO/model/entity/tool"
	"toolledger.GO/service/ledger"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ApplyMovement loads the tool, runs the ledger engine and persists the
// paired (tool update, movement insert) atomically. The returned movement
// carries the signed delta actually applied.
func (s *Service) ApplyMovement(toolID uint, action toolEntity.Action, magnitude int64, note, operator string) (*toolEntity.Tool, *toolEntity.Movement, error) {
	if !action.IsValid() {
		return nil, nil, apperr.BadRequest(apperr.CodeInvalidAction, "action must be one of IN, OUT, ADJUST")
	}

	var (
		t  toolEntity.Tool
		mv toolEntity.Movement
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, toolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("tool")
			}
			return err
		}

		delta, newQty, err := ledger.ComputeTransition(action, magnitude, t.Quantity)
		if err != nil {
			return err
		}

		oldQty := t.Quantity
		t.Quantity = newQty
		t.UpdatedAt = time.Now().UTC()
		if err := tx.Model(&toolEntity.Tool{}).Where("id = ?", t.ID).
			Updates(map[string]interface{}{"quantity": t.Quantity, "updated_at": t.UpdatedAt}).Error; err != nil {
			return err
		}

		mv = toolEntity.Movement{
			ToolID:   t.ID,
			Action:   action,
			Delta:    delta,
			Note:     ledger.BuildNote(action, magnitude, oldQty, newQty, note),
			Operator: operator,
		}
		return tx.Create(&mv).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &t, &mv, nil
}

// CreateTool inserts a tool. A non-zero initial quantity is itself a
// movement-producing event: the synthetic IN row is written in the same
// transaction as the tool insert.
func (s *Service) CreateTool(name, location string, quantity int64, operator string) (*toolEntity.Tool, *toolEntity.Movement, error) {
	if name == "" {
		return nil, nil, apperr.BadRequest(apperr.CodeInvalidBody, "name is required")
	}
	if quantity < 0 {
		return nil, nil, apperr.InvalidDelta("initial quantity must be >= 0")
	}
	if location == "" {
		location = "unknown"
	}

	t := toolEntity.Tool{
		Name:      name,
		Location:  location,
		Quantity:  quantity,
		UpdatedAt: time.Now().UTC(),
	}
	var mv *toolEntity.Movement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		if quantity == 0 {
			return nil
		}
		mv = &toolEntity.Movement{
			ToolID:   t.ID,
			Action:   toolEntity.ActionIn,
			Delta:    quantity,
			Note:     ledger.NoteInitialStock,
			Operator: operator,
		}
		return tx.Create(mv).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &t, mv, nil
}

// UpdateTool changes name/location only. Quantity moves exclusively through
// ApplyMovement so the movement log stays complete.
func (s *Service) UpdateTool(id uint, name, location string) (*toolEntity.Tool, error) {
	if name == "" {
		return nil, apperr.BadRequest(apperr.CodeInvalidBody, "name is required")
	}
	if location == "" {
		location = "unknown"
	}

	var t toolEntity.Tool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("tool")
			}
			return err
		}
		t.Name = name
		t.Location = location
		t.UpdatedAt = time.Now().UTC()
		return tx.Model(&toolEntity.Tool{}).Where("id = ?", t.ID).
			Updates(map[string]interface{}{"name": t.Name, "location": t.Location, "updated_at": t.UpdatedAt}).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTool removes the tool row. Its movements stay behind as history.
func (s *Service) DeleteTool(id uint) error {
	res := s.db.Delete(&toolEntity.Tool{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("tool")
	}
	return nil
}
