package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newTwoFACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "2fa",
		Short: "Two-factor authentication commands",
	}

	cmd.AddCommand(newTwoFAEnrollCmd())
	cmd.AddCommand(newTwoFAQRCmd())
	cmd.AddCommand(newTwoFAVerifyCmd())

	return cmd
}

func newTwoFAEnrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll",
		Short: "Start TOTP enrollment (rotates the secret)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Enrollment

			if err := client.Post("/api/v1/2fa/enroll", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTwoFAQRCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Download the enrollment QR code as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.GetBytes("/api/v1/2fa/enroll/qr", "image/png")
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write image: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("QR code written to " + outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "f", "2fa-qr.png", "Output file path")

	return cmd
}

func newTwoFAVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <code>",
		Short: "Verify a TOTP code (a valid code completes enrollment)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"code": args[0]}
			var result VerifyResult

			if err := client.Post("/api/v1/2fa/verify", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
