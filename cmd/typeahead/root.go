package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"typeahead/internal/config"
	"typeahead/internal/dataset"
	"typeahead/internal/eventbus"
	"typeahead/internal/ui"
)

// errAborted is returned when the picker is left with Ctrl+C
var errAborted = errors.New("aborted")

type rootOptions struct {
	configPath string
	logPath    string
	minLength  int
	words      []string
	file       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "typeahead",
		Short: "Pick a value from suggestions as you type",
		Long: `Pick a value from suggestions as you type.

The picker shows suggestions from the configured datasets below a single
input line. Enter with the menu closed prints the text to stdout.

Examples:
  # Pick one of the default datasets
  typeahead

  # Pick from a word list
  typeahead --words apple,banana,cherry

  # Pick a line of a file, reloading it when it changes
  typeahead --file ~/notes/projects.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is the user config dir typeahead/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.logPath, "log", "typeahead.log", "log file")
	cmd.Flags().IntVar(&opts.minLength, "min-length", 1, "minimum query length before suggestions show")
	cmd.Flags().StringSliceVar(&opts.words, "words", nil, "comma separated words to pick from")
	cmd.Flags().StringVar(&opts.file, "file", "", "file with one suggestion per line, watched for changes")

	cmd.AddCommand(newInitCmd(opts))

	return cmd
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := configService(opts)
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", svc.Path())
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func configService(opts *rootOptions) config.ConfigService {
	if opts.configPath != "" {
		return config.NewConfigServiceAt(opts.configPath)
	}
	return config.NewConfigService()
}

func runPicker(cmd *cobra.Command, opts *rootOptions) error {
	// Set up logging
	logFile, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New("Typeahead")
	// subscribe before loading so the log shows the config load
	events := ui.NewEventLog(bus)
	svc := config.WithBus(configService(opts), bus)

	cfg, err := svc.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, opts, cfg); err != nil {
		return err
	}

	built, err := dataset.Build(cfg.Datasets, filepath.Dir(svc.Path()))
	if err != nil {
		return err
	}

	model, err := ui.NewModel(bus, cfg, built.Datasets, ui.WithEventLog(events))
	if err != nil {
		return err
	}

	// the UI draws on stderr so stdout carries only the result
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithOutput(os.Stderr))
	model.SetProgram(p)

	for _, f := range built.Watched {
		go func() {
			err := f.Watch(ctx, func() {
				p.Send(ui.DatasetReloadedMsg{Name: f.Name()})
			})
			if err != nil {
				log.Printf("Watching %s failed: %v", f.Path(), err)
			}
		}()
	}

	log.Printf("Starting UI with %d datasets...", len(built.Datasets))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")

	result, ok := model.Result()
	if !ok {
		return errAborted
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

// applyFlags lets explicit flags override the loaded config
func applyFlags(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) error {
	if cmd.Flags().Changed("min-length") {
		cfg.MinLength = max(opts.minLength, 0)
	}

	var datasets []config.Dataset
	if len(opts.words) > 0 {
		datasets = append(datasets, config.Dataset{Name: "words", Words: opts.words})
	}
	if opts.file != "" {
		abs, err := filepath.Abs(opts.file)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", opts.file, err)
		}
		datasets = append(datasets, config.Dataset{
			Name:  filepath.Base(abs),
			File:  abs,
			Watch: true,
		})
	}
	if len(datasets) > 0 {
		cfg.Datasets = datasets
	}
	return cfg.Validate()
}
