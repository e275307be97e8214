package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/depexport/internal/configloader"
	"github.com/yaklabco/depexport/internal/logging"
	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/reporter"
	"github.com/yaklabco/depexport/pkg/runner"
)

type generateFlags struct {
	target   config.Target
	language string
	module   string
	exclude  []string
	anchor   string
	format   string
	compact  bool
	check    bool
}

func newGenerateCommand() *cobra.Command {
	var cfg config.Config
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate or refresh the re-export block of entry files",
		Long:  generateLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, &cfg, flags)
		},
	}

	addGenerateFlags(cmd, &cfg, flags)

	return cmd
}

const generateLongDescription = `Generate the re-export block for each target's entry file.

Targets come from the configuration file, or from --entry together with a
dependency source (--doc-model, --manifest, or --go-mod). By default the
patched entry file is printed and nothing is written.

Examples:
  depexport generate --entry src/lib.rs --manifest Cargo.toml
  depexport generate --entry src/lib.rs --doc-model target/doc/mycrate.json --format diff
  depexport generate --write --yes         # Patch every configured target
  depexport generate --check --format diff # Fail in CI when a block is stale`

func runGenerate(cmd *cobra.Command, cliCfg *config.Config, flags *generateFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	if err := applyGenerateFlags(cmd, cliCfg, flags); err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration resolved",
		logging.FieldTargets, len(cfg.Targets),
		logging.FieldModule, cfg.ModuleName,
		logging.FieldAnchor, cfg.Anchor,
		logging.FieldJobs, cfg.Jobs,
	)

	// Writing from a terminal shows the result first and asks before touching files.
	preview := cfg.Write && !cfg.Yes && isTerminal(cmd.InOrStdin())
	if preview {
		cfg.Write = false
	}

	runOpts := runner.Options{WorkingDir: workDir, Jobs: cfg.Jobs}

	result, err := runner.New(cfg).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      cfg.Format,
		Color:       colorMode,
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if preview && result.Stats.TargetsChanged > 0 {
		result, err = confirmAndWrite(ctx, cmd, cfg, runOpts, result)
		if err != nil {
			return err
		}
	}

	switch {
	case result.HasErrors():
		return ErrTargetsFailed
	case ExitCodeFromResult(result, flags.check) != ExitSuccess:
		return ErrOutOfDate
	default:
		return nil
	}
}

// confirmAndWrite asks before re-running with writes enabled and returns
// preview unchanged when the answer is no. The re-run refuses files
// modified since the preview read them.
func confirmAndWrite(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	opts runner.Options,
	preview *runner.Result,
) (*runner.Result, error) {
	logger := logging.FromContext(ctx)

	question := fmt.Sprintf("Write %d changed file(s)?", preview.Stats.TargetsChanged)
	ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), question)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Info("nothing written")
		return preview, nil
	}

	cfg.Write = true
	result, err := runner.New(cfg).Run(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	for _, outcome := range result.Targets {
		switch {
		case outcome.Error != nil:
			logger.Error("target failed", logging.FieldTarget, outcome.Target.DisplayName(), logging.FieldError, outcome.Error)
		case outcome.Write.Written:
			logger.Info("wrote", logging.FieldPath, outcome.Target.Entry, logging.FieldBackup, outcome.Write.BackupPath)
		}
	}

	return result, nil
}

// applyGenerateFlags copies explicitly set flags into the CLI config layer.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config, flags *generateFlags) error {
	changed := cmd.Flags().Changed

	if flags.target.Entry != "" {
		cfg.Targets = []config.Target{flags.target}
	} else if flags.target.DocModel != "" || flags.target.Manifest != "" || flags.target.GoMod != "" {
		return fmt.Errorf("%w: --doc-model, --manifest, and --go-mod require --entry", ErrUsage)
	}

	if changed("language") {
		cfg.Language = flags.language
	}
	if changed("module") {
		cfg.ModuleName = flags.module
	}
	if changed("exclude") {
		cfg.Exclude = flags.exclude
	}

	if changed("anchor") {
		anchor, err := config.ParseAnchor(flags.anchor)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cfg.Anchor = anchor
	}

	if changed("format") {
		format, err := config.ParseOutputFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cfg.Format = format
	}

	return nil
}

func addGenerateFlags(cmd *cobra.Command, cfg *config.Config, flags *generateFlags) {
	cmd.Flags().StringVar(&flags.target.Entry, "entry", "", "entry file to patch (replaces configured targets)")
	cmd.Flags().StringVar(&flags.target.DocModel, "doc-model", "", "rustdoc JSON documentation model")
	cmd.Flags().StringVar(&flags.target.Manifest, "manifest", "", "Cargo.toml used to locate the doc model")
	cmd.Flags().StringVar(&flags.target.GoMod, "go-mod", "", "go.mod whose direct requirements are exported")
	cmd.Flags().StringVar(&flags.language, "language", "", "force the language profile instead of detecting it")
	cmd.Flags().StringVar(&flags.module, "module", config.DefaultModuleName, "name of the generated module")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "dependency names never re-exported")
	cmd.Flags().StringVar(&flags.anchor, "anchor", string(config.AnchorStart), "where a new block goes: start, end")
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write patched files back to disk")
	cmd.Flags().BoolVarP(&cfg.Yes, "yes", "y", false, "write without asking for confirmation")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of targets processed concurrently (0 = auto)")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, diff, json")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit non-zero when a block is out of date")
}
