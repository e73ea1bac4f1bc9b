package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-fluentdoc/framework/app"
	"github.com/km-arc/go-fluentdoc/framework/container"
)

// overridable in tests
var runFn = func(ctx context.Context, a *app.Application) error { return a.Run(ctx) }

func main() {
	if err := NewRoot().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// NewRoot builds the fluentdoc command tree.
func NewRoot() *cobra.Command {
	var envFiles []string

	rootCmd := &cobra.Command{
		Use:           "fluentdoc",
		Short:         "Run and inspect a fluentdoc application container",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env when present)")

	rootCmd.AddCommand(newServeCmd(&envFiles))
	rootCmd.AddCommand(newBindingsCmd(&envFiles))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the fluentdoc version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.Version)
		},
	})
	return rootCmd
}

func newServeCmd(envFiles *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Boot the application and serve the inspection endpoints until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(*envFiles...)
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger().Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runFn(ctx, a)
		},
	}
}

func newBindingsCmd(envFiles *[]string) *cobra.Command {
	var (
		output string
		boot   bool
	)
	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "List the registered contracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(*envFiles...)
			if err != nil {
				return err
			}
			if boot {
				if err := a.Boot(); err != nil {
					return err
				}
			}
			return writeBindings(cmd.OutOrStdout(), output, a.Bindings())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&boot, "boot", false, "boot providers before listing")
	return cmd
}

func writeBindings(w io.Writer, format string, bindings []container.Binding) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(bindings)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(bindings); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
