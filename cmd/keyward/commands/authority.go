package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"keyward/internal/domain"
)

func grantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant [username] [authorized-key] [role] [weight]",
		Short: "Grant a key signing authority on one role of an account",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassword(); err != nil {
				return err
			}
			if err := appCtx.Unlock(password); err != nil {
				return err
			}
			weight, err := strconv.ParseUint(args[3], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid weight %q", args[3])
			}

			done := make(chan domain.Response, 1)
			appCtx.Stub.RequestAddKeyAuthority(args[0], args[1], args[2], uint32(weight),
				func(resp domain.Response) { done <- resp })
			return reportResponse(<-done)
		},
	}
}

func revokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke [username] [authorized-key] [role]",
		Short: "Revoke a key's signing authority on one role of an account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassword(); err != nil {
				return err
			}
			if err := appCtx.Unlock(password); err != nil {
				return err
			}

			done := make(chan domain.Response, 1)
			appCtx.Stub.RequestRemoveKeyAuthority(args[0], args[1], args[2],
				func(resp domain.Response) { done <- resp })
			return reportResponse(<-done)
		},
	}
}

func reportResponse(resp domain.Response) error {
	if !resp.Success {
		if resp.Message != "" {
			return fmt.Errorf("%s: %s", resp.Error, resp.Message)
		}
		return fmt.Errorf("%s", resp.Error)
	}
	fmt.Printf("Accepted: trx %s (block %d, trx_num %d)\n",
		resp.Result.ID, resp.Result.BlockNum, resp.Result.TrxNum)
	return nil
}
