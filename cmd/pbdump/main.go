// Command pbdump inspects and re-encodes protobuf wire data.
package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

var logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "pbdump",
		Short: "Inspect protobuf wire data",
		Long: `pbdump decodes protobuf wire data without generated code.

With a .proto schema it labels every field with its declared name and type;
without one it shows field numbers and wire types and guesses which
length-delimited payloads are nested messages.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			allow, err := levelOption(logLevel)
			if err != nil {
				return err
			}
			logger = level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr())), allow)
			logger = log.With(logger, "ts", log.DefaultTimestampUTC)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	cmd.AddCommand(
		dumpCmd(),
		reencodeCmd(),
		versionCmd(),
	)
	return cmd
}

func levelOption(name string) (level.Option, error) {
	switch name {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("invalid --log-level %q (want debug, info, warn or error)", name)
	}
}
