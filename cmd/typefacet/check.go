package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/typefacet/i18n"
	"github.com/reoring/typefacet/library"
	"github.com/reoring/typefacet/typesys"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Validate the facets of one or more library files",
	Long: `Load each library file and validate every facet attached to its types.

The command exits non-zero when a file cannot be loaded or any facet fails.
With --watch it keeps running and re-checks whenever a file changes.

Examples:
  typefacet check types.yaml
  typefacet check --closed-objects --format json types.yaml more.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var (
	checkFormat             string
	checkWatch              bool
	checkClosedObjects      bool
	checkAllowDuplicateKeys bool
)

var errCheckFailed = errors.New("validation failed")

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", formatText, "output format (text, json)")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "re-check when a file changes")
	checkCmd.Flags().BoolVar(&checkClosedObjects, "closed-objects", false, "reject undeclared keys in example values")
	checkCmd.Flags().BoolVar(&checkAllowDuplicateKeys, "allow-duplicate-keys", false, "accept duplicate YAML keys")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.validate(); err != nil {
		return err
	}
	i18n.SetLanguage(cfg.Lang)

	c := &checker{
		cfg:    cfg,
		out:    cmd.OutOrStdout(),
		logger: newLogger(cmd.ErrOrStderr(), cfg.LogLevel),
	}
	if !cfg.Watch {
		return c.run(args)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := c.run(args); err != nil && !errors.Is(err, errCheckFailed) {
		c.logger.Error().Err(err).Msg("check failed")
	}
	return c.watch(ctx, args)
}

// applyFlags overrides config file values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	fl := cmd.Flags()
	if fl.Changed("lang") {
		cfg.Lang = lang
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if fl.Changed("format") {
		cfg.Format = checkFormat
	}
	if fl.Changed("watch") {
		cfg.Watch = checkWatch
	}
	if fl.Changed("closed-objects") {
		cfg.ClosedObjects = checkClosedObjects
	}
	if fl.Changed("allow-duplicate-keys") {
		cfg.AllowDuplicateKeys = checkAllowDuplicateKeys
	}
}

type checker struct {
	cfg    *Config
	out    io.Writer
	logger zerolog.Logger
}

func (c *checker) options() library.Options {
	return library.Options{
		AllowDuplicateKeys: c.cfg.AllowDuplicateKeys,
		Registry:           typesys.Options{ClosedObjects: c.cfg.ClosedObjects},
	}
}

// run checks every file and writes one report. It returns errCheckFailed
// when any file fails to load or validate.
func (c *checker) run(files []string) error {
	reports := make([]fileReport, 0, len(files))
	failed := 0
	for _, file := range files {
		c.logger.Debug().Str("file", file).Msg("loading library")
		lib, err := library.LoadFile(file, c.options())
		if err != nil {
			c.logger.Error().Err(err).Str("file", file).Msg("load failed")
			reports = append(reports, newFileReport(file, nil, err))
			failed++
			continue
		}
		st := lib.Validate()
		if !st.OK() {
			failed++
		}
		c.logger.Info().
			Str("file", file).
			Int("types", len(lib.Registry.Types())).
			Bool("ok", st.OK()).
			Msg("library checked")
		reports = append(reports, newFileReport(file, st, nil))
	}
	if err := writeReports(c.out, c.cfg.Format, reports); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", errCheckFailed, failed, len(files))
	}
	return nil
}
