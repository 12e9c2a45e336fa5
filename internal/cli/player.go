package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerLoginCmd())
	cmd.AddCommand(newPlayerMeCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerSetUsernameCmd())
	cmd.AddCommand(newPlayerSetAvatarCmd())
	cmd.AddCommand(newPlayerSetStatusCmd())
	cmd.AddCommand(newPlayerLevelUpCmd())
	cmd.AddCommand(newPlayerAchievementsCmd())

	return cmd
}

func newPlayerLoginCmd() *cobra.Command {
	var id int64
	var login, email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Resolve a provider login into a session",
		Long: `Simulates the login callback from the external identity provider.
The resulting session token is saved for subsequent commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"id":    id,
				"login": login,
				"email": email,
			}
			var result AuthResult

			if err := client.Post("/api/v1/auth/callback", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Provider player id (required)")
	cmd.Flags().StringVar(&login, "login", "", "Provider login name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("login")

	return cmd
}

func newPlayerMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show current player info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/v1/players/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/v1/players/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerListCmd() *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/players"
			sep := "?"
			if status != "" {
				path += sep + "status=" + status
				sep = "&"
			}
			if search != "" {
				path += sep + "search=" + search
			}

			var result []Player
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by presence status")
	cmd.Flags().StringVar(&search, "search", "", "Filter by username substring")

	return cmd
}

func newPlayerSetUsernameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-username <username>",
		Short: "Change your username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"username": args[0]}
			var result Player

			if err := client.Patch("/api/v1/players/me/username", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerSetAvatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-avatar <url>",
		Short: "Change your avatar URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"avatar": args[0]}
			var result Player

			if err := client.Patch("/api/v1/players/me/avatar", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <status>",
		Short: "Change your presence status (online, offline, in_game)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"status": args[0]}
			var result Player

			if err := client.Patch("/api/v1/players/me/status", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerLevelUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "level-up",
		Short: "Increment your level by one step",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Post("/api/v1/players/me/level", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements <id>",
		Short: "Show a player's earned achievement tiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Achievements

			if err := client.Get("/api/v1/players/"+args[0]+"/achievements", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
