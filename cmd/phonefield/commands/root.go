package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"phonefield/internal/phonefield/service"
	"phonefield/platform/config"
	"phonefield/platform/events"
	"phonefield/platform/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	output  string
	verbose bool
	svc     *service.Service
)

// Execute runs the CLI against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "phonefield",
		Short:        "Country catalog and international phone number tool",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q (text, json, yaml)", output)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.Discard()
			if verbose {
				log = logger.NewWithWriter(cfg.Env, cmd.ErrOrStderr())
			}
			svc = service.New(cfg, events.NewInMemoryBus(log), log)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log field events to stderr")

	root.AddCommand(countriesCmd(), lookupCmd(), localeCmd(), detectCmd(), deriveCmd(), maskCmd())
	return root
}

// render writes v as json or yaml, or calls text for the default format.
func render(w io.Writer, v interface{}, text func(io.Writer) error) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func readFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
