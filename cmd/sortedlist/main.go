// Command sortedlist runs sorted-list command scripts or an interactive shell.
//
//	sortedlist --tree tidwall --type natural run commands.txt
//	sortedlist run --jobs 8 a.txt b.txt.gz https://example.com/c.txt
//	echo "add 3 1 2
//	list" | sortedlist run
//	sortedlist shell
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-sortedlist/envutil"
	amperrors "github.com/amp-labs/amp-sortedlist/errors"
	"github.com/amp-labs/amp-sortedlist/internal/repl"
	"github.com/amp-labs/amp-sortedlist/internal/source"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/script"
	"github.com/amp-labs/amp-sortedlist/tree"
	"github.com/spf13/cobra"
)

const (
	appName     = "sortedlist"
	defaultJobs = 4
)

type globalConfig struct {
	tree    treeKindFlag
	typ     elementTypeFlag
	degree  int
	envFile string
}

func (g *globalConfig) replConfig() repl.Config {
	return repl.Config{
		Name:   appName,
		Type:   repl.ElementType(g.typ),
		Tree:   tree.Kind(g.tree),
		Degree: g.degree,
	}
}

func main() {
	var opts []script.Option

	// Command output goes to stdout, so logs default to stderr.
	if _, ok := os.LookupEnv("LOG_OUTPUT"); !ok {
		opts = append(opts, script.LogOutput(os.Stderr))
	}

	script.New(appName, opts...).Run(func(ctx context.Context) error {
		return newRootCommand().ExecuteContext(ctx)
	})
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           appName,
		Short:         "sorted list with positional access",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := &globalConfig{
		tree: treeKindFlag(tree.RedBlack),
		typ:  elementTypeFlag(repl.IntType),
	}

	flags := rootCommand.PersistentFlags()
	flags.Var(&g.tree, "tree", "tree backend `kind`: "+kindNames())
	flags.Var(&g.typ, "type", "element `type`: int, float, string, natural or collated")
	flags.IntVar(&g.degree, "degree", 0, "branching `degree` of B-tree backends (0: default)")
	flags.StringVar(&g.envFile, "env-file", "", "load environment variables from `path` (.env, .json or .yaml)")

	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return g.resolve(cmd)
	}

	rootCommand.AddCommand(
		newRunCommand(g),
		newShellCommand(g),
	)

	return rootCommand
}

// resolve loads --env-file and fills every flag that was not given on the
// command line from SORTEDLIST_TREE, SORTEDLIST_TYPE and SORTEDLIST_DEGREE.
func (g *globalConfig) resolve(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if g.envFile != "" {
		if err := envutil.Load(g.envFile); err != nil {
			return err
		}

		// The file may carry LOG_* settings.
		if _, ok := os.LookupEnv("LOG_OUTPUT"); ok {
			logger.ConfigureLogging(ctx, appName)
		} else {
			logger.ConfigureLogging(ctx, appName, logger.WithOutput(os.Stderr))
		}
	}

	flags := cmd.Flags()

	if !flags.Changed("tree") {
		kind, err := envutil.Map(envutil.String(ctx, "SORTEDLIST_TREE"), tree.ParseKind).
			WithDefault(tree.Kind(g.tree)).Value()
		if err != nil {
			return err
		}

		g.tree = treeKindFlag(kind)
	}

	if !flags.Changed("type") {
		typ, err := envutil.Map(envutil.String(ctx, "SORTEDLIST_TYPE"), repl.ParseElementType).
			WithDefault(repl.ElementType(g.typ)).Value()
		if err != nil {
			return err
		}

		g.typ = elementTypeFlag(typ)
	}

	if !flags.Changed("degree") {
		degree, err := envutil.Int(ctx, "SORTEDLIST_DEGREE", envutil.Default(g.degree)).Value()
		if err != nil {
			return err
		}

		g.degree = degree
	}

	logger.Get(ctx).Debug("configuration resolved",
		"tree", g.tree.String(), "type", g.typ.String(), "degree", g.degree)

	return nil
}

func kindNames() string {
	names := make([]string, 0, len(tree.Kinds()))

	for _, kind := range tree.Kinds() {
		names = append(names, kind.String())
	}

	return strings.Join(names, ", ")
}

type runOptions struct {
	jobs    int
	charset string
	files   []string
}

const runLong = `Each FILE or URL runs against its own list. Without arguments (or with -)
commands are read from stdin. Files ending in .gz, .zst, .br, .lz4 or .sz are
decompressed. Scripts that aren't UTF-8 are converted.`

func newRunCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "run [options] [FILE|URL [...]]",
		Short:                 "execute command scripts from files, URLs or stdin",
		Long:                  runLong,
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(runOptions)
	c.Flags().IntVarP(&opts.jobs, "jobs", "j", defaultJobs, "run up to `n` script files at once")
	c.Flags().StringVar(&opts.charset, "charset", "", "character `set` of script files (default: detect)")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		opts.files = args

		return runRun(cmd.Context(), g, opts, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return c
}

func runRun(ctx context.Context, g *globalConfig, opts *runOptions, stdin io.Reader, out io.Writer) error {
	if len(opts.files) == 0 || (len(opts.files) == 1 && opts.files[0] == source.Stdin) {
		return exitOnFailure(runScript(ctx, g, stdin, out))
	}

	loader := source.NewLoader(source.WithStdin(stdin), source.WithCharset(opts.charset))

	if len(opts.files) == 1 {
		return exitOnFailure(runFile(ctx, g, loader, opts.files[0], out))
	}

	results := runFiles(ctx, g, loader, opts.files, opts.jobs)

	var errs amperrors.Collection

	for i, res := range results {
		_, _ = fmt.Fprintf(out, "==> %s <==\n", opts.files[i])
		_, _ = out.Write(res.output)

		errs.Add(res.err)
	}

	return exitOnFailure(errs.GetError())
}

type fileResult struct {
	output []byte
	err    error
}

// runFiles executes every file on its own list using a pool of jobs workers
// and returns the results in argument order.
func runFiles(ctx context.Context, g *globalConfig, loader *source.Loader, files []string, jobs int) []fileResult {
	pool := pond.NewPool(max(jobs, 1))
	defer pool.StopAndWait()

	results := make([]fileResult, len(files))
	tasks := make([]pond.Task, len(files))

	for i, file := range files {
		tasks[i] = pool.SubmitErr(func() error {
			var buf bytes.Buffer

			err := runFile(ctx, g, loader, file, &buf)
			results[i] = fileResult{output: buf.Bytes(), err: err}

			return err
		})
	}

	for _, task := range tasks {
		// Failures are reported through results.
		_ = task.Wait()
	}

	return results
}

func runFile(ctx context.Context, g *globalConfig, loader *source.Loader, path string, out io.Writer) error {
	ctx = logger.With(ctx, "script", path)

	data, err := loader.Load(ctx, path)
	if err != nil {
		return err
	}

	if err := runScript(ctx, g, bytes.NewReader(data), out); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}

	return nil
}

func runScript(ctx context.Context, g *globalConfig, input io.Reader, out io.Writer) error {
	runner, err := repl.Build(ctx, g.replConfig(), out)
	if err != nil {
		return err
	}

	return runner.RunScript(ctx, input)
}

// exitOnFailure makes failed scripts end the process with code 1. The
// failures have already been printed, so they are only logged once more.
func exitOnFailure(err error) error {
	if err == nil {
		return nil
	}

	return script.ExitWithError(err)
}
