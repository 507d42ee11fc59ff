package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toolledger.GO/config"
	toolRepo "toolledger.GO/model/repository/tool"
	"toolledger.GO/service/export"
)

var (
	exportFormat string
	exportOut    string
	exportQuery  string
)

var exportCmd = &cobra.Command{
	Use:   "tools:export",
	Short: "Export the tool catalog to CSV or XLSX",
	Run: func(cmd *cobra.Command, args []string) {
		if exportFormat != "csv" && exportFormat != "xlsx" {
			fmt.Printf("Unknown format %q (want csv or xlsx)\n", exportFormat)
			return
		}

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		tools, err := toolRepo.NewToolRepository(db)
		if err != nil {
			fmt.Printf("Repository init failed: %v\n", err)
			return
		}
		items, err := tools.ListAll(exportQuery, "id ASC")
		if err != nil {
			fmt.Printf("Query failed: %v\n", err)
			return
		}

		out := exportOut
		if out == "" {
			out = export.Filename("tools", exportFormat)
		}
		f, err := os.Create(out)
		if err != nil {
			fmt.Printf("Cannot create %s: %v\n", out, err)
			return
		}
		defer f.Close()

		if exportFormat == "csv" {
			err = export.ToolsCSV(f, items)
		} else {
			err = export.ToolsXLSX(f, items)
		}
		if err != nil {
			fmt.Printf("Export failed: %v\n", err)
			return
		}
		fmt.Printf("Exported %d tools to %s\n", len(items), out)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default tools_<timestamp>.<ext>)")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Substring filter over name/location")
	rootCmd.AddCommand(exportCmd)
}
