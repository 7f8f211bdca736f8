package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/taskgate/taskgate/pkg/config"
	"github.com/taskgate/taskgate/pkg/db"
	"github.com/taskgate/taskgate/pkg/invite"
	storegorm "github.com/taskgate/taskgate/pkg/server/store/gorm"
)

// inviteCmd represents the invite command
var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage project invites",
	Long:  `Manage project invite tokens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'invite' requires a subcommand (issue)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// inviteIssueCmd represents the invite issue command
var inviteIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue an invite token for a project",
	Long: `Issue an invite token for a project.

The token is signed with the configured invite secret and printed to stdout.
Anyone presenting it to the join endpoint before it expires becomes a member
of the project with every operation denied.

Example:
  taskgatectl invite issue --project 3f0b7f3e-7c1d-4b27-9e68-1d2f0a6b8c90`,
	Run: func(cmd *cobra.Command, args []string) {
		projectFlag, _ := cmd.Flags().GetString("project")

		token, err := issueInvite(projectFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue invite: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(inviteCmd)
	inviteCmd.AddCommand(inviteIssueCmd)
	inviteIssueCmd.Flags().String("project", "", "project id to invite into (required)")
	_ = inviteIssueCmd.MarkFlagRequired("project")
}

func issueInvite(projectFlag string) (string, error) {
	projectID, err := uuid.Parse(projectFlag)
	if err != nil {
		return "", fmt.Errorf("invalid project id %q: %w", projectFlag, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.InviteTokenSecret == "" {
		return "", fmt.Errorf("invite_token_secret is not configured")
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	projects := storegorm.NewProjectsStore(database)
	project, err := projects.Find(projectID)
	if err != nil {
		return "", fmt.Errorf("failed to look up project: %w", err)
	}
	if project == nil || project.IsArchived() {
		return "", fmt.Errorf("project not found: %s", projectID)
	}

	service := invite.NewService([]byte(cfg.InviteTokenSecret), cfg.InviteTTL())
	return service.Issue(projectID)
}
