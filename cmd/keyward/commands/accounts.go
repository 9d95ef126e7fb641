package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyward/internal/domain"
)

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List stored accounts and their key slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := appCtx.Keychain.ListAccounts()
			if err != nil {
				return err
			}
			for _, name := range names {
				acct, err := appCtx.Keychain.GetAccount(name)
				if err != nil {
					return err
				}
				fmt.Printf("@%s:", name)
				for _, role := range domain.Roles {
					if key, ok := acct.Key(role); ok {
						slot := string(role)
						if key.Private == "" {
							slot += " (public only)"
						}
						fmt.Printf(" %s", slot)
					}
				}
				fmt.Println()
			}
			return nil
		},
	}
}
