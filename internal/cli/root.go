package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/unishop/internal/config"
	"github.com/me/unishop/internal/logging"
)

var (
	flagServer    string
	flagDB        string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// defaultServer returns the default API URL, checking UNISHOP_API env var first.
func defaultServer() string {
	if s := os.Getenv("UNISHOP_API"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the unishop CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "unishop",
		Short: "unishop — student storefront client",
		Long:  "unishop signs in to the student storefront, browses the catalog, and manages the shopping cart.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(logging.ParseLevel(flagLogLevel), flagLogFormat)
		},
		SilenceUsage: true,
	}

	defaults := config.LoadClient()

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "Storefront API URL (or UNISHOP_API env)")
	root.PersistentFlags().StringVar(&flagDB, "db", defaults.DBPath, "Local session cache path (or UNISHOP_DB env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", defaults.LogFormat, "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProfileCmd(),
		newProductsCmd(),
		newCartCmd(),
	)

	return root
}
