package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"keyward/internal/app"
)

var (
	home       string
	password   string
	gatewayURL string
	configPath string

	appCtx *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "keyward",
		Short: "Wallet keychain: encrypted account keys and authority operations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Load(configPath)
			if home != "" {
				cfg.Home = home
			}
			if cfg.Home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				cfg.Home = filepath.Join(dir, ".keyward")
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}
			if gatewayURL != "" {
				cfg.GatewayURL = gatewayURL
			}

			var err error
			appCtx, err = app.NewWire(cfg, nil)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "keychain dir (default ~/.keyward)")
	root.PersistentFlags().StringVarP(&password, "password", "p", "", "keychain master password")
	root.PersistentFlags().StringVar(&gatewayURL, "gateway", "", "signing gateway base URL")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default keyward.yaml)")

	root.AddCommand(initCmd(), importCmd(), accountsCmd(), grantCmd(), revokeCmd(), handshakeCmd())
	return root.Execute()
}

// requirePassword gates commands that need the master password.
func requirePassword() error {
	if password == "" {
		return fmt.Errorf("master password required (-p)")
	}
	return nil
}
