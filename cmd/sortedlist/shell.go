package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amp-labs/amp-sortedlist/cli"
	"github.com/amp-labs/amp-sortedlist/internal/repl"
	"github.com/spf13/cobra"
)

// linePrompter is the part of cli.Terminal the shell needs.
type linePrompter interface {
	PromptLine(label string) (string, error)
	PromptConfirm(label string) (bool, error)
}

func newShellCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "shell [options]",
		Short:                 "run commands interactively",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context(), g, cli.Terminal{}, cmd.OutOrStdout())
	}

	return c
}

func runShell(ctx context.Context, g *globalConfig, term linePrompter, out io.Writer) error {
	cfg := g.replConfig()

	runner, err := repl.Build(ctx, cfg, out)
	if err != nil {
		return err
	}

	greeting := fmt.Sprintf("sortedlist shell\n%s / %s\ntype help for commands", cfg.Type, cfg.Tree)
	if cli.BannerSuppressed(ctx) {
		_, _ = fmt.Fprintln(out, greeting)
	} else {
		_, _ = fmt.Fprint(out, cli.Banner(greeting, cli.DefaultWidth, cli.AlignCenter))
	}

	for ctx.Err() == nil {
		line, err := term.PromptLine(appName)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if strings.EqualFold(line, "clear") {
			ok, err := term.PromptConfirm("Remove every entry")
			if errors.Is(err, io.EOF) {
				return nil
			}

			if err != nil {
				return err
			}

			if !ok {
				continue
			}
		}

		err = runner.Exec(ctx, line)
		if errors.Is(err, repl.ErrQuit) {
			return nil
		}

		if err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
		}
	}

	return nil
}
