// Package main provides the CLI entrypoint for kanjiquiz.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/config"
	"github.com/verte-zerg/kanjiquiz/internal/dataset"
	"github.com/verte-zerg/kanjiquiz/internal/generator"
	"github.com/verte-zerg/kanjiquiz/internal/kanken"
	"github.com/verte-zerg/kanjiquiz/internal/logging"
	"github.com/verte-zerg/kanjiquiz/internal/model"
	"github.com/verte-zerg/kanjiquiz/internal/quiz"
	"github.com/verte-zerg/kanjiquiz/internal/stats"
	"github.com/verte-zerg/kanjiquiz/internal/tui"
)

const (
	defaultSeconds   = quiz.DefaultSeconds
	defaultBonus     = quiz.DefaultBonus
	defaultHints     = quiz.DefaultHintLimit
	defaultMinCount  = 11
	defaultLevel     = 5.0
	defaultQuestions = quiz.DefaultQuestions
	defaultChoices   = quiz.DefaultDistractors + 1
	defaultMode      = "meaning"
	defaultLogLevel  = "info"
)

var (
	globalDataDir  string
	globalDBPath   string
	globalLogLevel string

	busyuSeconds   int
	busyuBonus     int
	busyuUnlimited bool
	busyuHints     int
	busyuMinCount  int

	yojiLevel     float64
	yojiQuestions int
	yojiChoices   int
	yojiMode      string
	yojiSeed      int64

	categoriesMinCount int

	importBusyu string
	importYoji  string

	exportDir string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kanjiquiz",
		Short:         "Kanji radical and four-character idiom quizzes",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&globalDataDir, "data", "", "directory holding busyu.json and yoji.json")
	rootCmd.PersistentFlags().StringVar(&globalDBPath, "db", config.DefaultDBPath(), "SQLite dataset database")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newBusyuCmd())
	rootCmd.AddCommand(newYojiCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newBusyuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "busyu [radical]",
		Short: "Name every kanji that shares a radical",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBusyuCmd,
	}
	cmd.Flags().IntVar(&busyuSeconds, "seconds", defaultSeconds, "starting countdown in seconds")
	cmd.Flags().IntVar(&busyuBonus, "bonus", defaultBonus, "seconds added per correct answer (0 disables)")
	cmd.Flags().BoolVar(&busyuUnlimited, "unlimited", false, "start without a countdown")
	cmd.Flags().IntVar(&busyuHints, "hints", defaultHints, "hints shown at once")
	cmd.Flags().IntVar(&busyuMinCount, "min-count", defaultMinCount, "list radicals with at least this many kanji")
	return cmd
}

func runBusyuCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "seconds", &busyuSeconds, fileCfg.Busyu.Seconds)
	applyIntConfig(cmd, "bonus", &busyuBonus, fileCfg.Busyu.Bonus)
	applyBoolConfig(cmd, "unlimited", &busyuUnlimited, fileCfg.Busyu.Unlimited)
	applyIntConfig(cmd, "hints", &busyuHints, fileCfg.Busyu.Hints)
	applyIntConfig(cmd, "min-count", &busyuMinCount, fileCfg.Busyu.MinCount)

	cfg := model.BusyuConfig{
		Seconds:   busyuSeconds,
		Bonus:     busyuBonus,
		Unlimited: busyuUnlimited,
		Hints:     busyuHints,
		MinCount:  busyuMinCount,
	}
	if err := validateBusyuConfig(cfg); err != nil {
		return err
	}

	logger, closeLog, err := tuiLogger(fileCfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ds, source, err := loadDataset(logger)
	if err != nil {
		return err
	}
	idx := catalog.Build(ds.Radicals)
	logger.Info("dataset loaded", "source", source, "categories", idx.Len())

	radical := ""
	if len(args) == 1 {
		radical = strings.TrimSpace(args[0])
	}
	m, err := tui.NewBusyuModel(tui.BusyuOptions{
		Index:    idx,
		Radical:  radical,
		MinCount: cfg.MinCount,
		Session:  freeTextOptions(cfg),
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen())
	m.SetSender(program.Send)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newYojiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yoji",
		Short: "Multiple-choice four-character idiom quiz",
		Args:  cobra.NoArgs,
		RunE:  runYojiCmd,
	}
	cmd.Flags().Float64Var(&yojiLevel, "level", defaultLevel, "kanken level (5, 4, 3, 2.5, 2, 1.5, 1)")
	cmd.Flags().IntVar(&yojiQuestions, "questions", defaultQuestions, "questions per round")
	cmd.Flags().IntVar(&yojiChoices, "choices", defaultChoices, "choices per question")
	cmd.Flags().StringVar(&yojiMode, "mode", defaultMode, "question mode (meaning, missing)")
	cmd.Flags().Int64Var(&yojiSeed, "seed", 0, "random seed (0 picks one)")
	return cmd
}

func runYojiCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyFloatConfig(cmd, "level", &yojiLevel, fileCfg.Yoji.Level)
	applyIntConfig(cmd, "questions", &yojiQuestions, fileCfg.Yoji.Questions)
	applyIntConfig(cmd, "choices", &yojiChoices, fileCfg.Yoji.Choices)
	applyStringConfig(cmd, "mode", &yojiMode, fileCfg.Yoji.Mode)

	cfg := model.YojiConfig{
		Level:     yojiLevel,
		Questions: yojiQuestions,
		Choices:   yojiChoices,
		Mode:      yojiMode,
	}
	opts, err := choiceOptions(cfg, yojiSeed)
	if err != nil {
		return err
	}

	logger, closeLog, err := tuiLogger(fileCfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ds, source, err := loadDataset(logger)
	if err != nil {
		return err
	}
	pool := catalog.BuildPool(ds.Idioms)
	logger.Info("dataset loaded", "source", source, "idioms", len(ds.Idioms))

	m, err := tui.NewYojiModel(tui.YojiOptions{Pool: pool, Session: opts, Logger: logger})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List radicals and their kanji counts",
		Args:  cobra.NoArgs,
		RunE:  runCategoriesCmd,
	}
	cmd.Flags().IntVar(&categoriesMinCount, "min-count", defaultMinCount, "list radicals with at least this many kanji")
	return cmd
}

func runCategoriesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "min-count", &categoriesMinCount, fileCfg.Busyu.MinCount)
	if categoriesMinCount < 0 {
		return fmt.Errorf("--min-count must be >= 0")
	}
	logger, err := stderrLogger()
	if err != nil {
		return err
	}
	ds, _, err := loadDataset(logger)
	if err != nil {
		return err
	}
	idx := catalog.Build(ds.Radicals)
	return stats.RenderCategories(cmd.OutOrStdout(), idx.EntriesWithMin(categoriesMinCount), stats.TerminalWidth())
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Count idioms per kanken level",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	logger, err := stderrLogger()
	if err != nil {
		return err
	}
	ds, _, err := loadDataset(logger)
	if err != nil {
		return err
	}
	pool := catalog.BuildPool(ds.Idioms)
	return stats.RenderLevels(cmd.OutOrStdout(), pool.LevelCounts(kanken.Levels))
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import JSON datasets into the SQLite store",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importBusyu, "busyu", "", "radical dataset JSON file")
	cmd.Flags().StringVar(&importYoji, "yoji", "", "idiom dataset JSON file")
	return cmd
}

func runImportCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	if importBusyu == "" && importYoji == "" {
		return fmt.Errorf("--busyu or --yoji is required")
	}
	logger, err := stderrLogger()
	if err != nil {
		return err
	}
	return importDataset(cmd.Context(), cmd.OutOrStdout(), logger, importBusyu, importYoji)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active dataset as JSON files",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportDir, "out", "", "output directory")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	if strings.TrimSpace(exportDir) == "" {
		return fmt.Errorf("--out is required")
	}
	logger, err := stderrLogger()
	if err != nil {
		return err
	}
	ds, source, err := loadDataset(logger)
	if err != nil {
		return err
	}
	if err := dataset.WriteDir(exportDir, ds); err != nil {
		return fmt.Errorf("failed to export dataset: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d radicals and %d idioms from %s to %s\n",
		len(ds.Radicals), len(ds.Idioms), source, exportDir)
	return err
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data", &globalDataDir, fileCfg.Data.Dir)
	applyStringConfig(cmd, "log-level", &globalLogLevel, fileCfg.Log.Level)
	return fileCfg, nil
}

func freeTextOptions(cfg model.BusyuConfig) quiz.FreeTextOptions {
	bonus := cfg.Bonus
	if bonus == 0 {
		bonus = -1
	}
	return quiz.FreeTextOptions{
		Seconds:   cfg.Seconds,
		Bonus:     bonus,
		Unlimited: cfg.Unlimited,
		HintLimit: cfg.Hints,
		Labels:    kanken.SchoolLabels{},
	}
}

func choiceOptions(cfg model.YojiConfig, seed int64) (quiz.ChoiceOptions, error) {
	if err := validateYojiConfig(cfg); err != nil {
		return quiz.ChoiceOptions{}, err
	}
	kind, err := quiz.ParseChoiceKind(cfg.Mode)
	if err != nil {
		return quiz.ChoiceOptions{}, fmt.Errorf("--mode: %w", err)
	}
	var src generator.Source = generator.New()
	if seed != 0 {
		src = generator.NewWithSeed(seed)
	}
	return quiz.ChoiceOptions{
		Kind:        kind,
		Level:       cfg.Level,
		Questions:   cfg.Questions,
		Distractors: cfg.Choices - 1,
		Source:      src,
	}, nil
}

func validateBusyuConfig(cfg model.BusyuConfig) error {
	if cfg.Seconds <= 0 {
		return fmt.Errorf("--seconds must be > 0")
	}
	if cfg.Bonus < 0 {
		return fmt.Errorf("--bonus must be >= 0")
	}
	if cfg.Hints <= 0 {
		return fmt.Errorf("--hints must be > 0")
	}
	if cfg.MinCount < 0 {
		return fmt.Errorf("--min-count must be >= 0")
	}
	return nil
}

func validateYojiConfig(cfg model.YojiConfig) error {
	if !slices.Contains(kanken.Levels, cfg.Level) {
		return fmt.Errorf("--level must be one of 5, 4, 3, 2.5, 2, 1.5, 1")
	}
	if cfg.Questions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}
	if cfg.Choices < 2 {
		return fmt.Errorf("--choices must be >= 2")
	}
	return nil
}

// tuiLogger logs to a file because the terminal belongs to the TUI.
func tuiLogger(fileCfg config.FileConfig) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(globalLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("--log-level: %w", err)
	}
	path := config.DefaultLogPath()
	if fileCfg.Log.File != nil && strings.TrimSpace(*fileCfg.Log.File) != "" {
		path = *fileCfg.Log.File
	}
	logger, closer, err := logging.OpenFile(path, level)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return logging.Discard(), func() {}, nil
	}
	return logger, func() {
		if cerr := closer.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}, nil
}

func stderrLogger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(globalLogLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return logging.New(os.Stderr, level), nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# kanjiquiz configuration
# Uncomment a value to enable it. CLI flags override config values.

[busyu]
# seconds = %d            # Starting countdown in seconds
# bonus = %d              # Seconds added per correct answer (0 disables)
# unlimited = false       # Start without a countdown
# hints = %d               # Hints shown at once
# min-count = %d          # List radicals with at least this many kanji

[yoji]
# level = %.1f             # Kanken level (5, 4, 3, 2.5, 2, 1.5, 1)
# questions = %d          # Questions per round
# choices = %d             # Choices per question
# mode = %q        # meaning or missing

[data]
# dir = ""                # Directory holding busyu.json and yoji.json

[log]
# level = %q          # debug, info, warn, error
# file = ""               # Log file used while a quiz is running
`,
		defaultSeconds,
		defaultBonus,
		defaultHints,
		defaultMinCount,
		defaultLevel,
		defaultQuestions,
		defaultChoices,
		defaultMode,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
