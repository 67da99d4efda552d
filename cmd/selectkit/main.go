package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"selectkit/internal/config"
	"selectkit/internal/engine"
	"selectkit/internal/filter"
	"selectkit/internal/option"
	"selectkit/internal/tui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		profilePath string
		logPath     string
		useFuzzy    bool
	)

	cmd := &cobra.Command{
		Use:   "selectkit",
		Short: "Interactive demo of the selectkit select engine",
		Long: "selectkit runs a terminal select widget driven by the headless\n" +
			"select engine. Options and behavior come from a TOML profile.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(logPath)
			if err != nil {
				return err
			}
			defer closeLog()

			profile, err := config.Load(profilePath)
			if err != nil {
				return err
			}

			eng := buildEngine(profile, logger, useFuzzy)
			defer eng.Destroy()

			model := tui.New(eng, profile.Title, profile.Creatable)
			p := tea.NewProgram(model)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run program: %w", err)
			}

			printResult(eng.State())
			return nil
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", config.DefaultPath(), "path to the TOML profile")
	cmd.Flags().StringVar(&logPath, "log", "selectkit.log", "debug log file")
	cmd.Flags().BoolVar(&useFuzzy, "fuzzy", false, "use fuzzy matching instead of substring")

	cmd.AddCommand(initCmd())
	return cmd
}

// initCmd writes the built-in default profile so users have a file to edit.
func initCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default profile to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(config.DefaultProfile(), path); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "profile", config.DefaultPath(), "path to write the profile to")
	return cmd
}

func buildEngine(p *config.Profile, logger *zap.Logger, useFuzzy bool) *engine.Engine[string] {
	options := make([]option.Option[string], len(p.Options))
	for i, e := range p.Options {
		options[i] = option.Option[string]{
			Value:       e.Value,
			Label:       e.Label,
			Group:       e.Group,
			Disabled:    e.Disabled,
			Description: e.Description,
		}
	}

	opts := []engine.Opt[string]{
		engine.WithOptions(options),
		engine.WithLogger[string](logger),
	}
	if p.Multiple {
		opts = append(opts, engine.WithMultiple[string]())
	}
	if p.Searchable {
		opts = append(opts, engine.WithSearchable[string]())
	}
	if p.Clearable {
		opts = append(opts, engine.WithClearable[string]())
	}
	if p.Creatable {
		opts = append(opts, engine.WithCreatable[string](createFromInput))
	}
	if p.MaxSelected > 0 {
		opts = append(opts, engine.WithMaxSelected[string](p.MaxSelected))
	}
	if p.MinSelected > 0 {
		opts = append(opts, engine.WithMinSelected[string](p.MinSelected))
	}
	if p.DebounceMillis > 0 {
		opts = append(opts, engine.WithSearchDebounce[string](time.Duration(p.DebounceMillis)*time.Millisecond))
	}
	if p.PageSize > 0 {
		opts = append(opts, engine.WithPageSize[string](p.PageSize))
	}
	if useFuzzy {
		opts = append(opts, engine.WithFilter[string](filter.Fuzzy[string]))
	}

	return engine.New(opts...)
}

// createFromInput turns free text into a new option for creatable profiles.
func createFromInput(_ context.Context, text string) (*option.Option[string], error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return &option.Option[string]{Value: strings.ToLower(text), Label: text}, nil
}

func printResult(s engine.State[string]) {
	if len(s.SelectedOptions) == 0 {
		fmt.Println("selected: (none)")
		return
	}
	labels := make([]string, len(s.SelectedOptions))
	for i, o := range s.SelectedOptions {
		labels[i] = o.Label
	}
	fmt.Printf("selected: %s\n", strings.Join(labels, ", "))
}

// newLogger opens a file-backed zap logger so log output never corrupts
// the terminal UI. Logging failures are not fatal to the demo.
func newLogger(path string) (*zap.Logger, func(), error) {
	if path == "" {
		return zap.NewNop(), func() {}, nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), func() {}, nil
	}
	return logger, func() { _ = logger.Sync() }, nil
}
