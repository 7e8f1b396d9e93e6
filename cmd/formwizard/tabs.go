package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/renderers/tabs"
)

func newTabsCmd(flags *rootFlags) *cobra.Command {
	var altScreen bool
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "Fill in the form in a tabbed terminal UI",
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

			options := []tabs.RunOption{
				tabs.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
				tabs.WithModelOptions(tabs.WithLayout(l)),
			}
			if altScreen {
				options = append(options, tabs.WithAltScreen())
			}
			return tabs.Run(cmd.Context(), w, options...)
		},
	}
	cmd.Flags().BoolVar(&altScreen, "alt-screen", true, "use the terminal's alternate screen")
	return cmd
}
