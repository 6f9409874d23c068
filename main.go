package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"printfind/internal/config"
	"printfind/internal/formatter"
	"printfind/internal/output"
	"printfind/internal/scraper"
	_ "printfind/internal/sites/cults3d"
	_ "printfind/internal/sites/makerworld"
	_ "printfind/internal/sites/myminifactory"
	_ "printfind/internal/sites/printables"
	_ "printfind/internal/sites/thangs"
	_ "printfind/internal/sites/thingiverse"
)

var version = "dev"

var (
	outputFormat string
	outputFile   string
	timeout      time.Duration
	perSource    int
	maxResults   int
	sites        []string
	render       bool
	showUI       bool
	proxyURL     string
	configPath   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "printfind [query]",
		Short:   "Search 3D printable model catalogs at once",
		Version: version,
		Long: `printfind queries several 3D printable model catalogs concurrently
(Thingiverse, Thangs, Printables, MakerWorld, Cults3D, MyMiniFactory),
interleaves their results and prints at most max-results models. When no
catalog returns anything it prints a link to each catalog's own search page.`,
		Example: `  # Search every catalog and print JSON
  printfind "3d benchy"

  # Only Printables and Thangs, as markdown
  printfind --site printables --site thangs -f markdown "gridfinity bin"

  # Render pages in a headless browser and save as CSV
  printfind --render -o results.csv "articulated dragon"

  # Serve the HTTP API
  printfind serve --addr :8080`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				os.Exit(0)
			}
			return nil
		},
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./printfind.yaml)")
	rootCmd.PersistentFlags().IntVar(&perSource, "per-source", 0, "Max results per catalog (default from config)")
	rootCmd.PersistentFlags().IntVar(&maxResults, "max-results", 0, "Max merged results (default from config)")
	rootCmd.PersistentFlags().StringSliceVar(&sites, "site", nil, "Restrict to catalogs (can be used multiple times)")
	rootCmd.PersistentFlags().BoolVar(&render, "render", false, "Render catalog pages in a headless browser")
	rootCmd.PersistentFlags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	rootCmd.PersistentFlags().StringVarP(&proxyURL, "proxy", "p", config.ProxyFromEnv(), "Proxy URL for the browser (e.g. http://127.0.0.1:7890), defaults to PRINTFIND_PROXY env var")

	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format ("+strings.Join(formatter.Formats, ", ")+")")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (format inferred from extension if -f not specified)")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Overall search timeout")

	rootCmd.AddCommand(newSourcesCmd(), newServeCmd())
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return eris.New("query is required")
	}

	// If output file is specified but format is not, infer format from file extension
	if outputFile != "" && !cmd.Flags().Changed("format") {
		if inferred := formatter.FromExtension(outputFile); inferred != "" {
			outputFormat = inferred
		}
	}
	if !formatter.Valid(outputFormat) {
		return eris.Errorf("invalid output format: %s", outputFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	p := newPipeline(cfg)
	defer p.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp := p.agg.Aggregate(ctx, query)

	outputContent, err := formatter.Format(output.NewResponseContent(resp), outputFormat)
	if err != nil {
		return eris.Wrap(err, "failed to format output")
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(outputContent), 0644); err != nil {
			return eris.Wrap(err, "failed to write to file")
		}
		fmt.Fprintf(os.Stderr, "Output written to: %s\n", outputFile)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), outputContent)
	}
	return nil
}

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources [query]",
		Short: "List configured catalogs and their search URLs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			query := "benchy"
			if len(args) == 1 {
				query = args[0]
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SOURCE\tNAME\tSEARCH URL")
			for _, site := range scraper.Sites(cfg.EnabledSources()...) {
				src := site.Source()
				fmt.Fprintf(w, "%s\t%s\t%s\n", src, src.DisplayName(), site.SearchURL(query))
			}
			return w.Flush()
		},
	}
}

// loadConfig reads the config file, applies flag overrides and initializes
// logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return nil, err
	}
	zap.L().Debug("config loaded",
		zap.Strings("sources", cfg.Search.Sources),
		zap.Int("per_source_limit", cfg.Search.PerSourceLimit),
		zap.Int("max_results", cfg.Search.MaxResults),
		zap.Bool("render", cfg.Fetch.Render),
	)
	return cfg, nil
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("per-source") {
		cfg.Search.PerSourceLimit = perSource
	}
	if flags.Changed("max-results") {
		cfg.Search.MaxResults = maxResults
	}
	if len(sites) > 0 {
		cfg.Search.Sources = sites
	}
	if flags.Changed("render") {
		cfg.Fetch.Render = render
	}
	if flags.Changed("proxy") || cfg.Fetch.ProxyURL == "" {
		cfg.Fetch.ProxyURL = proxyURL
	}
}
