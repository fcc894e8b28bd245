package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/newsverdict/verdict/internal/adapter/client"
	"github.com/newsverdict/verdict/internal/adapter/repository/gormdb"
	"github.com/newsverdict/verdict/internal/adapter/view"
	"github.com/newsverdict/verdict/internal/domain/repository"
	"github.com/newsverdict/verdict/internal/infrastructure/config"
	"github.com/newsverdict/verdict/internal/infrastructure/database"
	"github.com/newsverdict/verdict/internal/infrastructure/logger"
	"github.com/newsverdict/verdict/internal/infrastructure/metrics"
	"github.com/newsverdict/verdict/internal/usecase"
)

const (
	exitOK       = 0
	exitFailed   = 1
	exitUsage    = 2
	historyLimit = 20
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("verdict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	noColor := fs.Bool("no-color", false, "Disable coloured output")
	verbose := fs.Bool("v", false, "Log at the configured level instead of warn")
	history := fs.Bool("history", false, "List recent analyses instead of analyzing")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: verdict [flags] [text...]")
		fmt.Fprintln(stderr, "Reads the article from stdin when no text is given.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to load config: %v\n", err)
		return exitUsage
	}
	if !*verbose {
		cfg.Log.Level = "warn"
	}

	log, err := logger.NewLoggerTo(&cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to initialize logger: %v\n", err)
		return exitUsage
	}
	defer func() { _ = log.Sync() }()

	var (
		db   *gorm.DB
		repo repository.AnalysisRepository
	)
	if cfg.History.Enabled {
		db, err = database.NewDB(&cfg.History, &cfg.Database)
		if err != nil {
			log.Error("Failed to open history database", zap.Error(err))
			return exitFailed
		}
		defer func() { _ = database.Close(db) }()

		if err := database.AutoMigrate(db); err != nil {
			log.Error("Failed to run migrations", zap.Error(err))
			return exitFailed
		}
		repo = gormdb.NewAnalysisRepository(db)
	}

	predictClient := client.NewPredictClient(cfg.Classifier.URL, cfg.Classifier.Timeout)
	classifier := client.NewVerdictClassifier(predictClient, cfg.Classifier.StrictKeys, log)
	verdictUC := usecase.NewVerdictUsecase(classifier, repo, metrics.New(prometheus.NewRegistry()), log)

	if *history {
		return printHistory(ctx, verdictUC, stdout, stderr)
	}

	text, err := readText(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to read input: %v\n", err)
		return exitUsage
	}

	term := view.NewTerminal(stdout, stderr, !*noColor)
	input := &usecase.AnalyzeInput{Text: text, RequestID: uuid.NewString()}
	if _, err := verdictUC.Analyze(ctx, input, term.Bindings()); err != nil {
		log.Debug("Analysis failed", zap.Error(err))
		return exitFailed
	}

	if err := term.Flush(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}
	return exitOK
}

// readText joins the positional arguments, or reads stdin when there are none.
// The text is passed on untrimmed.
func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func printHistory(ctx context.Context, uc usecase.VerdictUsecase, stdout, stderr io.Writer) int {
	out, err := uc.History(ctx, historyLimit, 0)
	if errors.Is(err, usecase.ErrHistoryDisabled) {
		fmt.Fprintln(stderr, "history is disabled; set VERDICT_HISTORY_ENABLED=true")
		return exitUsage
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}

	table := tablewriter.NewWriter(stdout)
	table.SetHeader([]string{"Created", "Verdict", "Latency", "Preview"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, a := range out.Analyses {
		table.Append([]string{
			a.CreatedAt.Format("2006-01-02 15:04:05"),
			a.FinalVerdict,
			strconv.FormatInt(a.LatencyMs, 10) + "ms",
			strings.ReplaceAll(a.TextPreview, "\n", " "),
		})
	}
	table.Render()
	fmt.Fprintf(stdout, "%d of %d analyses\n", len(out.Analyses), out.Total)
	return exitOK
}
