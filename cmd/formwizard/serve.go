package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/server"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form wizard over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags, map[string]string{
				"addr":      "server.addr",
				"base-path": "server.base_path",
			})
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
			themes, err := a.themes()
			if err != nil {
				return err
			}
			sub, err := a.submitter()
			if err != nil {
				return err
			}

			assetsPath := "/assets"
			renderer, err := vanilla.New(
				vanilla.WithAssetBase(assetsPath),
				vanilla.WithThemeSelector(themes),
			)
			if err != nil {
				return err
			}

			srv, err := server.New(
				server.WithBasePath(cfg.Server.BasePath),
				server.WithAssetsPath(assetsPath),
				server.WithRenderer(renderer),
				server.WithLayout(l),
				server.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
				server.WithSubmitter(sub),
				server.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			return srv.Serve(cmd.Context(), cfg.Server.Addr)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("base-path", "/wizard", "path prefix for wizard sessions")
	return cmd
}
