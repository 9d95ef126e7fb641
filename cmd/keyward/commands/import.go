package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyward/internal/domain"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [username] [role] [public-key] [private-key]",
		Short: "Store an account role key, encrypted under the master password",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassword(); err != nil {
				return err
			}
			username := args[0]
			role, ok := domain.ParseRole(args[1])
			if !ok {
				return fmt.Errorf("invalid role %q (Active, Posting, Owner, Memo)", args[1])
			}
			key := domain.RoleKey{Public: args[2], Private: args[3]}

			if err := appCtx.Keychain.ImportKey(password, username, role, key); err != nil {
				return err
			}
			fmt.Printf("Imported %s key for @%s\n", role, username)
			return nil
		},
	}
}
