package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newRelationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relation",
		Short: "Friend and block list commands",
	}

	cmd.AddCommand(newRelationAddCmd())
	cmd.AddCommand(newRelationListCmd())
	cmd.AddCommand(newRelationRemoveCmd())

	return cmd
}

func newRelationAddCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add <target-id>",
		Short: "Create a relation to another player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			req := map[string]any{"target_id": targetID, "kind": kind}
			var result Relation

			if err := client.Post("/api/v1/relations", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "friend", "Relation kind: friend, blocked")

	return cmd
}

func newRelationListCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your relations",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/relations"
			if kind != "" {
				path += "?kind=" + kind
			}

			var result []Relation
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by relation kind")

	return cmd
}

func newRelationRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a relation by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/relations/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Relation removed")
			return nil
		},
	}
}
