package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"toolledger.GO/config"
	entity "toolledger.GO/model/entity"
	toolEntity "toolledger.GO/model/entity/tool"
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Create or update the ledger schema",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		if err := db.AutoMigrate(
			&entity.User{},
			&toolEntity.Tool{},
			&toolEntity.Movement{},
		); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			return
		}
		fmt.Println("Schema is up to date.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
