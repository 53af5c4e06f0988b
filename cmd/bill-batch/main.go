package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealbox/internal/app"
	"mealbox/internal/billing"
	"mealbox/internal/calendar"
	"mealbox/internal/config"
	"mealbox/internal/logger"

	"github.com/schollz/progressbar/v3"
)

func main() {
	var (
		ownerID  = flag.String("owner", "", "operator (owner) id whose active clients are billed")
		month    = flag.String("month", "", "billing month, YYYY-MM (default: previous month)")
		strategy = flag.String("strategy", billing.StrategyProRata, "billing strategy: itemized or prorata")
		quiet    = flag.Bool("quiet", false, "disable the progress bar")
	)
	flag.Parse()

	if *ownerID == "" {
		fmt.Fprintln(os.Stderr, "bill-batch: -owner is required")
		flag.Usage()
		os.Exit(2)
	}
	if *month == "" {
		*month = previousMonth(time.Now().UTC())
	}

	cfg := config.Load()
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := app.OpenRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	services := app.NewServices(repos, log)
	if err := app.EnableReceiptArchive(ctx, cfg, services.Bills, log); err != nil {
		log.Fatalw("failed to enable receipt archive", "error", err)
	}

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if *quiet {
			return
		}
		if bar == nil {
			bar = progressbar.Default(int64(total), "billing "+*month)
		}
		_ = bar.Set(done)
	}

	result, err := services.Bills.GenerateMonthly(ctx, *ownerID, *month, *strategy, progress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		log.Errorw("batch aborted", "month", *month, "error", err)
		if result == nil {
			os.Exit(1)
		}
	}

	fmt.Printf("\n%s (%s): %d bills generated, %d failed\n",
		result.Month, result.Strategy, len(result.Generated), len(result.Failures))
	for _, f := range result.Failures {
		fmt.Printf("  FAILED %-36s %-24s %s\n", f.ClientID, f.ClientName, f.Error)
	}

	if len(result.Failures) > 0 || err != nil {
		os.Exit(1)
	}
}

// previousMonth steps back from the first of now's month so the day of
// month can never overflow into the current one.
func previousMonth(now time.Time) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	return calendar.FormatMonth(prev.Year(), prev.Month())
}
