package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var (
		rendererName string
		recordPath   string
		stepKey      string
		output       string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one step of the form to stdout or a file",
		Example: `  formwizard render --step review --record acme.json
  formwizard render --renderer text --step product-2 --record acme.json`,
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
			themes, err := a.themes()
			if err != nil {
				return err
			}

			var options []wizard.Option
			if recordPath != "" {
				record, err := readRecord(recordPath)
				if err != nil {
					return err
				}
				options = append(options, wizard.WithRecord(record))
			}
			w := wizard.New(options...)
			if stepKey != "" {
				step, err := wizard.ParseStepID(stepKey)
				if err != nil {
					return err
				}
				if err := w.SelectStep(step); err != nil {
					return err
				}
			}

			orch := orchestrator.New(
				orchestrator.WithLayout(l),
				orchestrator.WithThemeSelector(themes),
			)
			out, err := orch.Generate(cmd.Context(), orchestrator.Request{
				Wizard:   w,
				Renderer: rendererName,
				RenderOptions: render.RenderOptions{
					Theme:        cfg.Theme.Name,
					ThemeVariant: cfg.Theme.Variant,
				},
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("formwizard: write output: %w", err)
			}
			a.logger.Info("rendered", "renderer", rendererName, "output", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&rendererName, "renderer", "vanilla", "renderer name (vanilla, text) or media type (text/html, text/plain)")
	cmd.Flags().StringVar(&recordPath, "record", "", "JSON file holding a record to prefill")
	cmd.Flags().StringVar(&stepKey, "step", "", "step to render, e.g. company, product-2, review")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func readRecord(path string) (wizard.FormRecord, error) {
	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return wizard.FormRecord{}, fmt.Errorf("formwizard: read record: %w", err)
	}
	var record wizard.FormRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return wizard.FormRecord{}, fmt.Errorf("formwizard: decode record: %w", err)
	}
	return record, nil
}
