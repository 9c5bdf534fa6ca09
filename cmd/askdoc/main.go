// Package main is the askdoc CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/askdoc/internal/cli"
	"github.com/hyperjump/askdoc/internal/config"
	"github.com/hyperjump/askdoc/internal/extract"
	"github.com/hyperjump/askdoc/internal/llm"
	"github.com/hyperjump/askdoc/internal/metrics"
	"github.com/hyperjump/askdoc/internal/models"
	"github.com/hyperjump/askdoc/internal/qa"
	"github.com/hyperjump/askdoc/internal/server"
	"github.com/hyperjump/askdoc/internal/storage"
	"github.com/hyperjump/askdoc/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/askdoc/config.yaml"

const shutdownTimeout = 10 * time.Second

// loadConfig loads config from path. When path is the default, config.yaml in the
// current directory wins if it exists, and a missing default file means defaults
// plus environment. Returns the config and the path actually loaded ("" for none).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "version", "--version", "-v":
		fmt.Printf("askdoc version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds the wired pipeline shared by the server and ask commands.
type Components struct {
	Service *qa.Service
	Uploads *storage.Uploads
	Metrics *metrics.Metrics
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	uploads, err := storage.NewUploads(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload store: %w", err)
	}
	client, err := llm.NewClient(cfg.Completion, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	m := metrics.New()
	svc := qa.NewService(
		extract.NewExtractor(),
		extract.NewScraper(newScrapeClient(cfg.Scrape)),
		client,
		uploads,
		m,
		logger,
	)
	return &Components{Service: svc, Uploads: uploads, Metrics: m}, nil
}

func newScrapeClient(cfg config.ScrapeConfig) *http.Client {
	c := &http.Client{}
	if cfg.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return c
}

func newLogger(cfg *config.Config, debug bool) (*zap.Logger, error) {
	return utils.NewLoggerWithOptions(utils.LogOptions{
		Debug:      debug,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := newLogger(cfg, debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.String("model", cfg.Completion.Model),
		zap.String("upload_dir", cfg.Upload.Dir),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	srv := server.NewServer(components.Service, components.Uploads, cfg, components.Metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, srv, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// lifecycle is the part of *server.Server that serve drives.
type lifecycle interface {
	Start() error
	Stop(ctx context.Context) error
}

// serve runs srv until ctx is canceled or srv fails, then shuts it down.
func serve(ctx context.Context, srv lifecycle, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	return g.Wait()
}

// askArgsReorder moves any flags (and their values) that appear after the question
// to the front so that flag.Parse() sees them; flag stops at the first non-flag.
func askArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// buildQuestion joins all positional args with spaces so multi-word questions
// work with or without shell quoting.
func buildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func printAskUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: askdoc ask [flags] (-file path | -url url) <question>\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  askdoc ask -file report.pdf what is the total revenue
  askdoc ask -url https://go.dev/doc "what is go?"
  askdoc ask -json -url https://example.com summarize this page
`)
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	filePath := fs.String("file", "", "document to ask about")
	pageURL := fs.String("url", "", "web page to ask about")
	jsonOut := fs.Bool("json", false, "print the answer as JSON")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Usage = func() { printAskUsage(fs) }
	_ = fs.Parse(askArgsReorder(os.Args[2:]))

	question := buildQuestion(fs.Args())
	if question == "" || (*filePath == "") == (*pageURL == "") {
		printAskUsage(fs)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg, cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Debug("ask", zap.String("question", cli.TruncateWords(question, 12)))
	if err := ask(ctx, components.Service, os.Stdout, *filePath, *pageURL, question, cli.ParseOutputFormat(*jsonOut)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ask answers one question about a local file or a URL and writes the result.
func ask(ctx context.Context, svc server.Answerer, w io.Writer, filePath, pageURL, question string, format cli.OutputFormat) error {
	if pageURL != "" {
		answer, err := svc.AnswerURL(ctx, pageURL, question)
		if err != nil {
			return err
		}
		return cli.WriteAnswer(w, answer.URL, answer.Answer, answer, format)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer f.Close()
	doc := models.UploadedDocument{Name: filepath.Base(filePath)}
	if info, statErr := f.Stat(); statErr == nil {
		doc.Size = info.Size()
	}
	answer, err := svc.AnswerUpload(ctx, doc, f, question)
	if err != nil {
		return err
	}
	return cli.WriteAnswer(w, answer.FileName, answer.Answer, answer, format)
}

func printUsage() {
	fmt.Printf(`askdoc - ask questions about documents and web pages

Usage:
  askdoc <command> [flags]

Commands:
  server    Run the HTTP server (POST /upload, POST /scrape, GET /)
  ask       Answer one question about a local file or a URL
  version   Print version
  help      Show this help

Configuration:
  -config path   YAML config (default %s, falls back to ./config.yaml)
  %s must be set in the environment, a .env file, or completion.api_key.

Run 'askdoc <command> -h' for command flags.
`, defaultConfigPath, config.APIKeyEnv)
}
