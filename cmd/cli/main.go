package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"findability/internal/cli"
	"findability/internal/client"
	"findability/internal/version"
)

type exitErr struct {
	code int
}

func (e *exitErr) Error() string { return fmt.Sprintf("exit %d", e.code) }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		api     string
		timeout time.Duration
	)
	defaultAPI := os.Getenv("FINDABILITY_API")
	if defaultAPI == "" {
		defaultAPI = "http://127.0.0.1:8080"
	}

	cmd := &cobra.Command{
		Use:           "findability",
		Short:         "Capture a company's findability signals and score them",
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := client.New(api, client.WithHTTPClient(client.DefaultHTTPClient(timeout)))
			s := cli.New(c, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := s.Run(cmd.Context()); err != nil {
				// The session already printed the reason.
				return &exitErr{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&api, "api", defaultAPI, "Base URL of the findability API (env FINDABILITY_API)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-request timeout")
	return cmd
}
