package inventory

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	toolEntity "toolledger.GO/model/entity/tool"
	"toolledger.GO/service/ledger"
)

// ImportRow is one tool to create during a bulk import.
type ImportRow struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Quantity int64  `json:"quantity"`
}

// ImportOptions tunes a bulk import run.
type ImportOptions struct {
	BatchSize int
	Operator  string
}

// ImportReport summarizes a bulk import run.
type ImportReport struct {
	TotalRows int
	Created   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
	DBTime    time.Duration
}

// ImportTools creates tools in batches, each batch one transaction. Every
// created tool with quantity > 0 gets its initial-stock movement in the same
// transaction, so the pairing invariant holds for imports too. Invalid rows
// are skipped with a warning rather than failing the run.
func (s *Service) ImportTools(rows []ImportRow, opts ImportOptions) (*ImportReport, error) {
	start := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.Operator == "" {
		opts.Operator = "import"
	}

	report := &ImportReport{TotalRows: len(rows)}

	valid := make([]ImportRow, 0, len(rows))
	for i, row := range rows {
		row.Name = strings.TrimSpace(row.Name)
		if row.Name == "" {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("row %d: empty name", i+1))
			continue
		}
		if row.Quantity < 0 {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("row %d (%s): negative quantity %d", i+1, row.Name, row.Quantity))
			continue
		}
		if row.Location == "" {
			row.Location = "unknown"
		}
		valid = append(valid, row)
	}

	for from := 0; from < len(valid); from += opts.BatchSize {
		to := from + opts.BatchSize
		if to > len(valid) {
			to = len(valid)
		}
		batch := valid[from:to]

		dbStart := time.Now()
		err := s.db.Transaction(func(tx *gorm.DB) error {
			now := time.Now().UTC()
			for _, row := range batch {
				t := toolEntity.Tool{
					Name:      row.Name,
					Location:  row.Location,
					Quantity:  row.Quantity,
					UpdatedAt: now,
				}
				if err := tx.Create(&t).Error; err != nil {
					return err
				}
				if row.Quantity == 0 {
					continue
				}
				mv := toolEntity.Movement{
					ToolID:   t.ID,
					Action:   toolEntity.ActionIn,
					Delta:    row.Quantity,
					Note:     ledger.NoteInitialStock,
					Operator: opts.Operator,
				}
				if err := tx.Create(&mv).Error; err != nil {
					return err
				}
			}
			return nil
		})
		report.DBTime += time.Since(dbStart)
		if err != nil {
			report.TotalTime = time.Since(start)
			return report, err
		}
		report.Created += len(batch)
	}

	report.TotalTime = time.Since(start)
	return report, nil
}
