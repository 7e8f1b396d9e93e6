package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
)

func newPromptCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form through interactive prompts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags, nil)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			l, err := a.layout()
			if err != nil {
				return err
			}
			w, err := a.newWizard()
			if err != nil {
				return err
			}

			session := tui.NewSession(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithLayout(l),
				tui.WithLogger(a.logger),
			)
			return session.Run(cmd.Context(), w)
		},
	}
}
