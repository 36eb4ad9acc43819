package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campushub/server/internal/auth"
	"github.com/campushub/server/internal/storage"
	"github.com/campushub/server/internal/storage/mongodb"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	userEmail     string
	userPassword  string
	userUsername  string
	userFirstName string
	userLastName  string
	userRole      string
	userDept      string
	userStudentID string
	userFacultyID string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Create a user account with a bcrypt-hashed password.

Examples:
  # Create a coordinator
  server user create --email jdoe@univ.edu --password s3cret --username jdoe --role coordinator

  # Create a student with a student id
  server user create --email a@univ.edu --password pw --username a --role student --student-id S1234`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserCreate(cmd)
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "account email (required)")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "account password (required)")
	userCreateCmd.Flags().StringVar(&userUsername, "username", "", "account username (required)")
	userCreateCmd.Flags().StringVar(&userFirstName, "first-name", "", "first name")
	userCreateCmd.Flags().StringVar(&userLastName, "last-name", "", "last name")
	userCreateCmd.Flags().StringVar(&userRole, "role", "student", "role (admin, coordinator, student)")
	userCreateCmd.Flags().StringVar(&userDept, "department", "", "department")
	userCreateCmd.Flags().StringVar(&userStudentID, "student-id", "", "student id")
	userCreateCmd.Flags().StringVar(&userFacultyID, "faculty-id", "", "faculty id")

	userCmd.AddCommand(userCreateCmd)
}

func runUserCreate(cmd *cobra.Command) error {
	if userEmail == "" || userPassword == "" || userUsername == "" {
		return fmt.Errorf("--email, --password, and --username are required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer func() { _ = repo.Close(context.Background()) }()

	email := strings.ToLower(strings.TrimSpace(userEmail))
	if _, err := repo.Users().FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("user with email %s already exists", email)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(userPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := repo.Users().Create(ctx, &storage.User{
		Username:     userUsername,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    userFirstName,
		LastName:     userLastName,
		Role:         string(auth.NormalizeRole(userRole)),
		Department:   userDept,
		StudentID:    userStudentID,
		FacultyID:    userFacultyID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s) with role %s\n", user.Username, user.ID.Hex(), user.Role)
	return nil
}
