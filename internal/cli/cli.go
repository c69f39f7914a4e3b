// Package cli implements rdbsnap's command-line entry points.
package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"rdbsnap/internal/config"
	"rdbsnap/internal/filter"
	"rdbsnap/internal/format"
	"rdbsnap/internal/loader"
	"rdbsnap/internal/logger"
	"rdbsnap/internal/rdb"
	"rdbsnap/internal/source"
)

// Execute dispatches CLI subcommands and returns a process exit code.
func Execute(args []string) int {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("[rdbsnap] ")

	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "dump":
		return runDump(args[1:])
	case "load":
		return runLoad(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return 0
	case "version", "--version", "-v":
		fmt.Println("rdbsnap 0.1.0-dev")
		return 0
	default:
		log.Printf("unknown subcommand: %s", args[0])
		printUsage()
		return 1
	}
}

func loadConfigFromArgs(cmd string, args []string) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	var configPath string
	fs.StringVar(&configPath, "config", "", "configuration file path (YAML)")
	fs.StringVar(&configPath, "c", "", "configuration file path (YAML)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, fs, flag.ErrHelp
		}
		return nil, fs, fmt.Errorf("failed to parse arguments: %w", err)
	}
	if configPath == "" {
		fs.Usage()
		return nil, fs, fmt.Errorf("the --config flag is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fs, err
	}
	return cfg, fs, nil
}

func errorToExitCode(err error) int {
	if err == nil {
		return 0
	}
	if err == flag.ErrHelp {
		return 0
	}
	log.Printf("command failed: %v", err)
	return 1
}

func initLogger(cfg *config.Config, mode string) error {
	level := parseLogLevel(cfg.Log.Level)
	if err := logger.Init(cfg.Log.Dir, level, cfg.ResolveLogPrefix(mode)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.SetOutput(logger.Writer())
	return nil
}

func parseLogLevel(levelStr string) logger.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return logger.DEBUG
	case "info":
		return logger.INFO
	case "warn", "warning":
		return logger.WARN
	case "error":
		return logger.ERROR
	default:
		return logger.INFO
	}
}

// buildFilter turns a config.FilterConfig into an rdb.Filter, expanding
// each Redis-level type name into every on-disk encoding tag that can
// carry it.
func buildFilter(cfg config.FilterConfig) (*filter.AllowList, error) {
	var tags []byte
	for _, name := range cfg.Types {
		mapped, ok := filter.TagForName(strings.ToLower(name))
		if !ok {
			return nil, fmt.Errorf("filter.types: unknown type name %q", name)
		}
		tags = append(tags, mapped...)
	}
	return filter.NewAllowList(cfg.Databases, tags, cfg.KeyPatterns), nil
}

func openSnapshot(cfg *config.Config) (*rdb.Parser, func() error, error) {
	rc, err := source.Open(cfg.Input.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot: %w", err)
	}
	f, err := buildFilter(cfg.Filter)
	if err != nil {
		rc.Close()
		return nil, nil, err
	}

	var fm rdb.Formatter
	var closeOutput func() error
	switch cfg.Output.Format {
	case "plain":
		w, closeW, err := openOutput(cfg.Output.Path)
		if err != nil {
			rc.Close()
			return nil, nil, err
		}
		pf := format.NewPlainFormatter(w)
		fm = pf
		closeOutput = func() error {
			if err := pf.Flush(); err != nil {
				return err
			}
			return closeW()
		}
	default:
		w, closeW, err := openOutput(cfg.Output.Path)
		if err != nil {
			rc.Close()
			return nil, nil, err
		}
		fm = format.NewJSONFormatter(w)
		closeOutput = closeW
	}

	parser := rdb.NewParser(rc, fm, f)
	closeAll := func() error {
		rc.Close()
		if closeOutput != nil {
			return closeOutput()
		}
		return nil
	}
	return parser, closeAll, nil
}

func openOutput(path string) (*os.File, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, f.Close, nil
}

func runDump(args []string) int {
	cfg, _, err := loadConfigFromArgs("dump", args)
	if err != nil {
		return errorToExitCode(err)
	}
	if err := initLogger(cfg, "dump"); err != nil {
		return errorToExitCode(err)
	}
	defer logger.Close()

	logger.Console("decoding %s", cfg.Input.Path)
	parser, closeAll, err := openSnapshot(cfg)
	if err != nil {
		return errorToExitCode(err)
	}
	defer closeAll()

	if err := parser.Parse(); err != nil {
		logger.Error("decode failed: %v", err)
		return errorToExitCode(err)
	}
	if err := closeAll(); err != nil {
		return errorToExitCode(err)
	}
	logger.Console("done")
	return 0
}

func runLoad(args []string) int {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	var configPath string
	fs.StringVar(&configPath, "config", "", "configuration file path (YAML)")
	fs.StringVar(&configPath, "c", "", "configuration file path (YAML)")
	if err := fs.Parse(args); err != nil {
		return errorToExitCode(err)
	}
	if configPath == "" {
		fs.Usage()
		return errorToExitCode(fmt.Errorf("the --config flag is required"))
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return errorToExitCode(err)
	}
	if cfg.Target.Addr == "" {
		return errorToExitCode(fmt.Errorf("target.addr is required for load"))
	}

	if err := initLogger(cfg, "load"); err != nil {
		return errorToExitCode(err)
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Warn("interrupted, shutting down")
		cancel()
	}()

	f, err := buildFilter(cfg.Filter)
	if err != nil {
		return errorToExitCode(err)
	}
	rc, err := source.Open(cfg.Input.Path)
	if err != nil {
		return errorToExitCode(fmt.Errorf("open snapshot: %w", err))
	}
	defer rc.Close()

	ld, err := loader.New(ctx, loader.Config{
		Addr:         cfg.Target.Addr,
		Password:     cfg.Target.Password,
		TLS:          cfg.Target.TLS,
		OpsPerSecond: cfg.RateLimit.OpsPerSecond,
		BatchSize:    cfg.RateLimit.BatchSize,
	})
	if err != nil {
		return errorToExitCode(err)
	}
	defer ld.Close()

	logger.Console("loading %s into %s", cfg.Input.Path, cfg.Target.Addr)
	parser := rdb.NewParser(rc, ld, f)
	if err := parser.Parse(); err != nil {
		logger.Error("load failed: %v", err)
		return errorToExitCode(err)
	}
	if err := ld.Close(); err != nil {
		return errorToExitCode(err)
	}
	logger.Console("done")
	return 0
}

func printUsage() {
	binary := filepath.Base(os.Args[0])
	fmt.Printf(`rdbsnap - RDB snapshot decoder

Usage:
  %[1]s <command> [options]

Available commands:
  dump    Decode a snapshot and write it as JSON or plain text
  load    Decode a snapshot and replay it into a live Redis/Dragonfly server
  help    Show this help
  version Show version info

Examples:
  %[1]s dump --config dump.yaml
  %[1]s load --config load.yaml
`, binary)
}
