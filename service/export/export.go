// Package export renders tool and movement listings as CSV or XLSX
// downloads. Formatting only; rows come in already filtered and sorted.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	toolEntity "toolledger.GO/model/entity/tool"
)

// utf8BOM makes Excel detect UTF-8 in CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const timeLayout = "2006-01-02 15:04:05"

var toolHeader = []string{"id", "name", "location", "quantity", "updated_at"}

var movementHeader = []string{"id", "tool_id", "action", "delta", "note", "operator", "created_at"}

func toolRow(t toolEntity.Tool) []string {
	return []string{
		strconv.FormatUint(uint64(t.ID), 10),
		t.Name,
		t.Location,
		strconv.FormatInt(t.Quantity, 10),
		t.UpdatedAt.Format(timeLayout),
	}
}

func movementRow(m toolEntity.Movement) []string {
	return []string{
		strconv.FormatUint(uint64(m.ID), 10),
		strconv.FormatUint(uint64(m.ToolID), 10),
		string(m.Action),
		strconv.FormatInt(m.Delta, 10),
		m.Note,
		m.Operator,
		m.CreatedAt.Format(timeLayout),
	}
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	// trailing export timestamp row, matches the legacy ledger files
	if err := cw.Write(nil); err != nil {
		return err
	}
	if err := cw.Write([]string{"exported_at", time.Now().Format(timeLayout)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// ToolsCSV writes the tool listing as UTF-8 CSV with a BOM.
func ToolsCSV(w io.Writer, tools []toolEntity.Tool) error {
	rows := make([][]string, 0, len(tools))
	for _, t := range tools {
		rows = append(rows, toolRow(t))
	}
	return writeCSV(w, toolHeader, rows)
}

// MovementsCSV writes the movement listing as UTF-8 CSV with a BOM.
func MovementsCSV(w io.Writer, movements []toolEntity.Movement) error {
	rows := make([][]string, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, movementRow(m))
	}
	return writeCSV(w, movementHeader, rows)
}

func writeXLSX(w io.Writer, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	f.DeleteSheet("Sheet1")

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

// ToolsXLSX writes the tool listing as an XLSX workbook.
func ToolsXLSX(w io.Writer, tools []toolEntity.Tool) error {
	rows := make([][]string, 0, len(tools))
	for _, t := range tools {
		rows = append(rows, toolRow(t))
	}
	return writeXLSX(w, "Tools", toolHeader, rows)
}

// MovementsXLSX writes the movement listing as an XLSX workbook.
func MovementsXLSX(w io.Writer, movements []toolEntity.Movement) error {
	rows := make([][]string, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, movementRow(m))
	}
	return writeXLSX(w, "Movements", movementHeader, rows)
}

// Filename builds an attachment filename like tools_20260829_153000.csv.
func Filename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
}
