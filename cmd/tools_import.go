package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"toolledger.GO/config"
	"toolledger.GO/service/inventory"
)

var (
	importFile     string
	importBatch    int
	importOperator string
)

var importCmd = &cobra.Command{
	Use:   "tools:import",
	Short: "Import tools from CSV; initial quantities get their stock-in movement",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		rows, warnings, err := parseToolCSV(f)
		if err != nil {
			fmt.Printf("Failed to parse CSV: %v\n", err)
			return
		}

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := inventory.NewService(db).ImportTools(rows, inventory.ImportOptions{
			BatchSize: importBatch,
			Operator:  importOperator,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range append(warnings, res.Warnings...) {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
CSV rows:       %d
Created:        %d
Skipped:        %d
Total time:     %s
  - DB writes:  %s
=====================
`, res.TotalRows, res.Created, res.Skipped,
			res.TotalTime.Round(time.Millisecond),
			res.DBTime.Round(time.Millisecond))
	},
}

// parseToolCSV reads rows shaped name,location,quantity with a header line.
func parseToolCSV(f *os.File) ([]inventory.ImportRow, []string, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	colIndex := map[string]int{}
	for i, name := range records[0] {
		colIndex[strings.ToLower(strings.TrimSpace(name))] = i
	}
	nameCol, ok := colIndex["name"]
	if !ok {
		return nil, nil, fmt.Errorf("missing required column: name")
	}

	var (
		rows     []inventory.ImportRow
		warnings []string
	)
	for n, record := range records[1:] {
		row := inventory.ImportRow{}
		if nameCol < len(record) {
			row.Name = strings.TrimSpace(record[nameCol])
		}
		if ci, ok := colIndex["location"]; ok && ci < len(record) {
			row.Location = strings.TrimSpace(record[ci])
		}
		if ci, ok := colIndex["quantity"]; ok && ci < len(record) {
			if v := strings.TrimSpace(record[ci]); v != "" {
				q, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					warnings = append(warnings, fmt.Sprintf("row %d: invalid quantity %q", n+2, v))
					continue
				}
				row.Quantity = q
			}
		}
		rows = append(rows, row)
	}
	return rows, warnings, nil
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().IntVar(&importBatch, "batch-size", 500, "Batch size for DB operations")
	importCmd.Flags().StringVar(&importOperator, "operator", "import", "Operator recorded on initial movements")
	rootCmd.AddCommand(importCmd)
}
