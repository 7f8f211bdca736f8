package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/taskgate/taskgate/pkg/db"
	"github.com/taskgate/taskgate/pkg/model"
	storegorm "github.com/taskgate/taskgate/pkg/server/store/gorm"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  `Manage TaskGate user accounts.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (create)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <email> <name>",
	Short: "Create a user account",
	Long: `Create a user account that can authenticate against the API.

The password is read from the --password flag, or from the
TASKGATE_USER_PASSWORD environment variable if the flag is not set.

Example:
  taskgatectl user create alice@example.com "Alice" --password secret`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]
		name := args[1]
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			password = os.Getenv("TASKGATE_USER_PASSWORD")
		}

		id, err := createUser(email, name, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user %s: %v\n", email, err)
			os.Exit(1)
		}
		fmt.Println(id)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("password", "", "password for the new user")
}

func createUser(email, name, password string) (uuid.UUID, error) {
	if password == "" {
		return uuid.Nil, fmt.Errorf("a password is required (--password or TASKGATE_USER_PASSWORD)")
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return uuid.Nil, err
	}

	users := storegorm.NewUsersStore(database)

	existing, err := users.FindByEmail(email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return uuid.Nil, fmt.Errorf("user already exists: %s", email)
	}

	user := &model.User{
		ID:    uuid.New(),
		Email: email,
		Name:  name,
	}
	if err := user.SetPassword(password); err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := users.Create(user); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}
