package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func handshakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handshake",
		Short: "Check that the keychain answers on the bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			done := make(chan struct{}, 1)
			if err := appCtx.Stub.Handshake(func() { done <- struct{}{} }); err != nil {
				return err
			}
			select {
			case <-done:
				fmt.Println("Keychain is present.")
				return nil
			case <-time.After(5 * time.Second):
				return fmt.Errorf("no handshake reply")
			}
		},
	}
}
