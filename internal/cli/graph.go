package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jjk-jacky/pacdep/pkg/dag"
	"github.com/jjk-jacky/pacdep/pkg/errors"
	graphio "github.com/jjk-jacky/pacdep/pkg/io"
	"github.com/jjk-jacky/pacdep/pkg/render/dot"
)

const (
	graphFormatDOT  = "dot"
	graphFormatSVG  = "svg"
	graphFormatJSON = "json"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	format   string // dot, svg or json
	output   string // output file; stdout when empty
	input    string // previously exported JSON graph to render instead of analyzing
	detailed bool   // version, repository and size in node labels
}

// graphCommand creates the graph command, which exports the closure of all
// its packages as one graph.
func (c *CLI) graphCommand() *cobra.Command {
	var flags analyzeFlags
	opts := graphOpts{format: graphFormatDOT}

	cmd := &cobra.Command{
		Use:   "graph [flags] PACKAGE...",
		Short: "Export the dependency closure as DOT, SVG or JSON",
		Long: `Export the closure of the given packages as a graph. All packages share one
closure. Nodes are colored by classification and edges to optional
dependencies are dashed.

A graph exported as JSON can be rendered again later with --input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateGraphFormat(opts.format); err != nil {
				return err
			}
			g, err := c.loadGraph(cmd, &flags, &opts, args)
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), cmd.ErrOrStderr(), g, &opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, json")
	cmd.Flags().StringVar(&opts.output, "output", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.input, "input", "", "render a graph exported with --format json")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show version, repository and size in node labels")

	return cmd
}

func validateGraphFormat(format string) error {
	switch format {
	case graphFormatDOT, graphFormatSVG, graphFormatJSON:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format %q: must be one of dot, svg, json", format)
}

// loadGraph imports opts.input, or analyzes args as one combined closure.
func (c *CLI) loadGraph(cmd *cobra.Command, flags *analyzeFlags, opts *graphOpts, args []string) (*dag.DAG, error) {
	if opts.input != "" {
		if len(args) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--input cannot be combined with package names")
		}
		g, err := graphio.ImportJSON(opts.input)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileRead, err, "importing graph")
		}
		return g, nil
	}

	s, err := flags.resolve(cmd, c.Logger)
	if err != nil {
		return nil, err
	}
	s.combined = true
	result, err := c.analyze(cmd.Context(), s, args)
	if err != nil {
		return nil, err
	}
	return result.Analyses[0].Closure.Graph(), nil
}

func (c *CLI) runGraph(ctx context.Context, status io.Writer, g *dag.DAG, opts *graphOpts) error {
	if g.HasCycle() {
		c.Logger.Debug("graph has dependency cycles")
	}

	var data []byte
	switch opts.format {
	case graphFormatJSON:
		var buf bytes.Buffer
		if err := graphio.WriteJSON(g, &buf); err != nil {
			return err
		}
		data = buf.Bytes()
	case graphFormatSVG:
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d packages...", g.NodeCount()))
		spinner.Start()
		svg, err := dot.RenderSVG(ctx, dot.ToDOT(g, dot.Options{Detailed: opts.detailed}))
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return err
		}
		spinner.Stop()
		data = svg
	default:
		data = []byte(dot.ToDOT(g, dot.Options{Detailed: opts.detailed}))
	}

	if opts.output == "" {
		_, err := c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(status, "Wrote %d packages, %d edges", g.NodeCount(), g.EdgeCount())
	printFile(status, opts.output)
	return nil
}
