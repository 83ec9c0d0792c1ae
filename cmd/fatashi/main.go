package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/umoja4life/fatashi"
	"github.com/umoja4life/fatashi/adapters/formatfile"
	"github.com/umoja4life/fatashi/adapters/jsonstorage"
	"github.com/umoja4life/fatashi/adapters/terminal"
	"github.com/umoja4life/fatashi/adapters/webapi"
	"github.com/umoja4life/fatashi/config"
	"github.com/umoja4life/fatashi/repl"
	"github.com/umoja4life/fatashi/service"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"os"
	"os/signal"
	"syscall"
)

var version = "v0.3.0"

var (
	configPath string
	verbose    bool
	debug      bool
	prod       bool
	listCount  int

	explainDepth int

	logger *zap.Logger
	svc    *service.Service
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fatashi",
	Short: "fatashi - Swahili dictionary and methali lookup",
	Long: `fatashi searches plain-text dictionaries with regex-based queries.

Run without arguments to start the interactive prompt. A search token may end
in a modifier: #type to qualify the definition, %2 or %3 to search the
definition or usage field, & to widen Swahili noun class prefixes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)

		logger, err = buildLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		svc, err = service.Open(cfg, formatfile.OpenChain)
		if err != nil {
			return err
		}
		svc.Logger = logger

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		theme := terminal.Theme(out)
		r := &repl.REPL{Service: svc, Out: out, Theme: theme, Version: version}

		_, _ = fmt.Fprintln(out, theme.Info(fmt.Sprintf("%s %s starting...", svc.Options.Name, version)))
		err := r.Run(cmd.Context(), cmd.InOrStdin())
		_, _ = fmt.Fprintln(out, theme.Info(fmt.Sprintf("...ending %s", svc.Options.Name)))

		return err
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [tokens...]",
	Short: "Search the vocabulary chain once and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return searchOnce(cmd.Context(), out, terminal.Theme(out), svc, service.ChainVocabulary, args)
	},
}

var methaliCmd = &cobra.Command{
	Use:   "methali [tokens...]",
	Short: "Search the methali chain once and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return searchOnce(cmd.Context(), out, terminal.Theme(out), svc, service.ChainMethali, args)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print random entries from the vocabulary chain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return listOnce(cmd.Context(), out, terminal.Theme(out), svc, service.ChainVocabulary)
	},
}

// searchOnce renders one search and fails when the chain is missing or any
// token's pattern does not compile.
func searchOnce(ctx context.Context, out io.Writer, theme repl.Theme, svc *service.Service, kind service.ChainKind, tokens []string) error {
	res, err := svc.Search(ctx, kind, 1, tokens)
	if err != nil {
		return err
	}

	format := res.Source.Format()
	for _, lookup := range res.Lookups {
		if err := theme.Result.Render(out, format, lookup); err != nil {
			return err
		}
	}

	errs := make([]error, 0, len(res.Errors))
	for _, patternErr := range res.Errors {
		errs = append(errs, patternErr)
	}

	return errors.Join(errs...)
}

func listOnce(ctx context.Context, out io.Writer, theme repl.Theme, svc *service.Service, kind service.ChainKind) error {
	res, err := svc.List(ctx, kind, 1, 0)
	if err != nil {
		return err
	}

	return theme.Result.RenderRecords(out, res.Source.Format(), res.Records)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, errCh := webapi.Setup(cfg.Web.Addr, logger)
		webapi.Dictionary(api.Group("/api"), svc, logger)
		logger.Info("listening", zap.String("addr", cfg.Web.Addr))

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
			return api.Shutdown(context.Background())
		}
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile [output]",
	Short: "Write every loaded chain to one JSON file for the lambda",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "./fatashi-compiled.json"
		if len(args) > 0 {
			path = args[0]
		}

		data := jsonstorage.FromChains(map[string]fatashi.Chain{
			string(service.ChainKamusi):  svc.Kamusi,
			string(service.ChainMethali): svc.Methali,
			string(service.ChainTest):    svc.Test,
		})
		data.Prod = cfg.App.Prod
		if err := data.WriteToFile(path); err != nil {
			return err
		}

		logger.Info("compiled", zap.String("path", path))
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain [tokens...]",
	Short: "Print the patterns each token expands to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := svc.Chain(service.ChainVocabulary)
		if err != nil {
			return err
		}
		k := chain.Depth(explainDepth)
		if k == nil {
			return fatashi.ErrEmptyChain
		}

		format := k.Format()
		out := cmd.OutOrStdout()
		for _, token := range args {
			q, ok := fatashi.ParseQuery(token)
			if !ok {
				_, _ = fmt.Fprintf(out, "%s: not a search term\n", token)
				continue
			}

			plan := format.Plan(q)
			_, _ = fmt.Fprintf(out, "%s (%s field, %s)\n", q, plan.Field, k.Name())
			_, _ = fmt.Fprintf(out, "  pattern:   %s\n", plan.Pattern)
			if plan.Qualifier != "" {
				_, _ = fmt.Fprintf(out, "  qualifier: %s\n", plan.Qualifier)
			}
			_, _ = fmt.Fprintf(out, "  highlight: %s\n", plan.Highlight)
		}

		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// The version needs neither config nor dictionaries.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "fatashi", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default $FATASHI_CONFIG or ./fatashi.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log at info level")
	flags.BoolVarP(&debug, "debug", "d", false, "log every lookup pattern at debug level")
	flags.BoolVarP(&prod, "prod", "p", false, "search the production kamusi chain instead of the test chain")
	flags.IntVarP(&listCount, "list", "n", 0, "number of entries printed by list commands")

	explainCmd.Flags().IntVar(&explainDepth, "depth", 1, "chain depth whose format is used")

	rootCmd.AddCommand(searchCmd, methaliCmd, listCmd, serveCmd, compileCmd, explainCmd, versionCmd)
}

// applyFlags lets flags set on the command line win over file and env values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.App.Verbose = verbose
	}
	if flags.Changed("debug") {
		cfg.App.Debug = debug
	}
	if flags.Changed("prod") {
		cfg.App.Prod = prod
	}
	if flags.Changed("list") && listCount > 0 {
		cfg.App.ListLineCount = listCount
	}
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Debug {
		return zap.NewDevelopmentConfig().Build()
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if cfg.App.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	return zc.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
