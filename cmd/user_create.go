package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"toolledger.GO/config"
	"toolledger.GO/core/password"
	entity "toolledger.GO/model/entity"
	userRepo "toolledger.GO/model/repository/user"
)

var (
	createUsername string
	createPassword string
)

var userCreateCmd = &cobra.Command{
	Use:   "user:create",
	Short: "Create an operator account",
	Run: func(cmd *cobra.Command, args []string) {
		if password.TooLong(createPassword) {
			fmt.Println("Password exceeds the 72-byte bcrypt limit")
			return
		}
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		hash, err := password.Hash(createPassword)
		if err != nil {
			fmt.Printf("Hashing failed: %v\n", err)
			return
		}
		users := userRepo.NewUserRepository(db)
		u := entity.User{Username: createUsername, PasswordHash: hash}
		if err := users.Create(&u); err != nil {
			if userRepo.IsDuplicate(err) {
				fmt.Printf("User %q already exists\n", createUsername)
				return
			}
			fmt.Printf("Create failed: %v\n", err)
			return
		}
		fmt.Printf("Created user %q (id=%d)\n", u.Username, u.ID)
	},
}

func init() {
	userCreateCmd.Flags().StringVarP(&createUsername, "username", "u", "", "Username (required)")
	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.Flags().StringVarP(&createPassword, "password", "p", "", "Password (required)")
	userCreateCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(userCreateCmd)
}
