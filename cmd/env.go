package cmd

import (
	"github.com/spf13/cobra"
)

func newEnvCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Environment hooks for evaluation runs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.output, map[string]bool{"reset": env.Reset(cmd.Context())})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the loaded environment configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.newEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), opts.output, env.Config())
		},
	})

	return cmd
}
