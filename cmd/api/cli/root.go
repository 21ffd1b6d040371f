// Package cli defines the command line of the sign-up service.
package cli

import (
	"fmt"
	"io"
	"os"

	"signup-service/cmd/api/app"
	"signup-service/cmd/api/server"

	"github.com/spf13/cobra"
)

// configPathEnv names the directory holding app.env and .env
const configPathEnv = "CONFIG_PATH"

type runtimeState struct {
	configPath string
	writer     io.Writer
}

// NewRootCommand builds the command tree. Running the root command serves HTTP.
func NewRootCommand(out io.Writer) *cobra.Command {
	rt := &runtimeState{writer: out}

	root := &cobra.Command{
		Use:           "signup-service",
		Short:         "Sign-up endpoint that notifies an administrator by email",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.configPath == "" {
				rt.configPath = os.Getenv(configPathEnv)
			}
			if rt.configPath == "" {
				rt.configPath = "."
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, rt)
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "directory containing app.env and .env (default $CONFIG_PATH or .)")

	root.AddCommand(newServeCommand(rt), newTestEmailCommand(rt))
	return root
}

func newServeCommand(rt *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the sign-up HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, rt)
		},
	}
}

func newTestEmailCommand(rt *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "test-email",
		Short: "Send the test email to the administrator and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(rt.configPath)
			if err != nil {
				return err
			}
			if err := a.SendTestEmail(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.writer, "Test email sent successfully!")
			return nil
		},
	}
}

func runServe(cmd *cobra.Command, rt *runtimeState) error {
	a, err := app.New(rt.configPath)
	if err != nil {
		return err
	}

	ctx, stop := server.WithSignal(cmd.Context(), a.Logger)
	defer stop()

	return a.Run(ctx)
}
