package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formwizard/internal/config"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "formwizard",
		Short:         "Multi-step application form wizard",
		Long:          "formwizard collects company, product and hardware details over a tabbed multi-step form and hands the record to a submitter.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ./formwizard.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text, json, logfmt")

	cmd.AddCommand(
		newPromptCmd(flags),
		newTabsCmd(flags),
		newServeCmd(flags),
		newRenderCmd(flags),
		newOpenAPICmd(flags),
	)
	return cmd
}

// loadConfig reads the config and applies every flag the user set.
func loadConfig(cmd *cobra.Command, flags *rootFlags, bindings map[string]string) (config.Config, error) {
	options := []config.LoadOption{
		flagOverride(cmd, "log-level", "log.level"),
		flagOverride(cmd, "log-format", "log.format"),
	}
	for flag, key := range bindings {
		options = append(options, flagOverride(cmd, flag, key))
	}
	return config.Load(flags.configPath, options...)
}

func flagOverride(cmd *cobra.Command, flag, key string) config.LoadOption {
	return func(v *viper.Viper) error {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			return nil
		}
		return v.BindPFlag(key, f)
	}
}
