package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jjk-jacky/pacdep/pkg/pipeline"
	"github.com/jjk-jacky/pacdep/pkg/report"
)

// runAnalyze is the root command: analyze the packages and print one report
// per closure.
func (c *CLI) runAnalyze(cmd *cobra.Command, flags *analyzeFlags, args []string) error {
	s, err := flags.resolve(cmd, c.Logger)
	if err != nil {
		return err
	}
	if err := report.ValidateFormat(s.format); err != nil {
		return err
	}

	result, err := c.analyze(cmd.Context(), s, args)
	if err != nil {
		return err
	}

	reports := make([]*report.Report, len(result.Analyses))
	for i, a := range result.Analyses {
		reports[i] = report.New(a.Closure)
	}

	switch s.format {
	case report.FormatJSON:
		return report.WriteJSON(c.Out, reports)
	case report.FormatYAML:
		return report.WriteYAML(c.Out, reports)
	default:
		return writeText(c.Out, reports)
	}
}

// analyze opens the databases and settles the closures of packages.
func (c *CLI) analyze(ctx context.Context, s *settings, packages []string) (*pipeline.Result, error) {
	runner, err := c.newRunner(s.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	ctx = withLogger(ctx, c.Logger)
	prog := newProgress(loggerFromContext(ctx))

	result, err := runner.Execute(ctx, pipeline.Options{
		ConfigPath: s.pacmanConf,
		Packages:   packages,
		Combined:   s.combined,
		Deps:       s.deps,
	})
	if err != nil {
		return nil, err
	}

	c.Logger.Debug("pipeline stats",
		"open", result.Stats.OpenTime,
		"analyze", result.Stats.AnalyzeTime,
		"known", result.Stats.Packages,
		"warnings", len(result.Warnings))
	prog.done(fmt.Sprintf("Analyzed %d closure(s)", len(result.Analyses)))
	return result, nil
}
