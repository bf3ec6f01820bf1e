package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kydenul/log"

	"qabot/internal/config"
	"qabot/internal/dataset"
	"qabot/internal/logger"
	"qabot/internal/service"
	"qabot/internal/tui"
)

const logPrefix = "QABOT_"

// run wires the bot and returns the process exit code. Startup errors go to
// stderr; stdout only carries the answer in -ask mode.
func run(args []string, lookup func(string) (string, bool), stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("qabot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfgPath, datasetPath, question string
	fs.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/qabot/config.yaml if not provided)")
	fs.StringVar(&datasetPath, "dataset", "", "Path to the question/answer dataset (.json, .yaml); overrides config")
	fs.StringVar(&question, "ask", "", "Answer a single question and exit instead of starting the UI")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(cfgPath, datasetPath, lookup)
	if err != nil {
		fmt.Fprintf(stderr, "qabot: %v\n", err)
		return 1
	}

	lg, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "qabot: init logger: %v\n", err)
		return 1
	}

	matcher, err := newMatcher(cfg, lg)
	if err != nil {
		fmt.Fprintf(stderr, "qabot: %v\n", err)
		return 1
	}

	if question != "" {
		fmt.Fprintln(stdout, matcher.Answer(question))
		return 0
	}

	m := tui.New(matcher, cfg.UI.Title)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(stdout)).Run(); err != nil {
		fmt.Fprintf(stderr, "qabot: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig resolves the configuration: file, then environment, then flags.
func loadConfig(cfgPath, datasetPath string, lookup func(string) (string, bool)) (*config.AppConfig, error) {
	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.ApplyEnv(cfg, lookup); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	if datasetPath != "" {
		cfg.Dataset.Path = datasetPath
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newMatcher(cfg *config.AppConfig, lg logger.Logger) (*service.Matcher, error) {
	entries, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	index, err := service.BuildIndex(entries, cfg.Embedder.TFIDF, lg)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	matcher, err := service.NewMatcher(index, cfg.MatcherOptions(), lg)
	if err != nil {
		return nil, fmt.Errorf("create matcher: %w", err)
	}
	return matcher, nil
}

// newLogger returns a file logger when a log directory or options file is
// configured and a discarding logger otherwise. Console output stays off in
// both cases because the logger's console sink is stdout.
func newLogger(cfg config.LogConfig) (logger.Logger, error) {
	if !cfg.Enabled() {
		return logger.Discard{}, nil
	}

	var opt *log.Options
	if cfg.ConfigFile != "" {
		loaded, err := log.LoadFromFile(cfg.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("load log config %s: %w", cfg.ConfigFile, err)
		}
		opt = loaded
	} else {
		opt = log.NewOptions()
		if opt == nil {
			return nil, errors.New("default log options rejected")
		}
		opt = opt.WithPrefix(logPrefix).WithLevel(cfg.Level).WithDirectory(cfg.Directory)
	}
	opt = opt.WithConsoleOutput(false)
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return log.NewLog(opt), nil
}
