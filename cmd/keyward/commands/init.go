package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the keychain and set its master password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassword(); err != nil {
				return err
			}
			if err := appCtx.Keychain.Initialize(password); err != nil {
				return err
			}
			fmt.Println("Keychain initialized.")
			return nil
		},
	}
}
