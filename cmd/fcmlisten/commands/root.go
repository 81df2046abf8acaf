package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quietpush/fcmreceiver/internal/logging"
)

var home string

// Execute builds and runs the fcmlisten command tree.
func Execute() error {
	root := &cobra.Command{
		Use:   "fcmlisten",
		Short: "Register and listen for FCM push notifications",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.ConfigureRuntime()
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".fcmlisten")
			}
			return os.MkdirAll(home, 0o700)
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.fcmlisten)")

	root.AddCommand(registerCmd(), listenCmd())
	return root.Execute()
}
