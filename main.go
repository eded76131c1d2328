package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lottosim/application"
	"lottosim/config"
	"lottosim/database"
	"lottosim/domain/entities"
	"lottosim/domain/interfaces"
	"lottosim/domain/rng"
	"lottosim/domain/services"
	"lottosim/infrastructure"
	"lottosim/repository"
	"lottosim/server"

	"github.com/cheggaaa/pb/v3"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	setupLogging()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatalf("Migration error: %v", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	var err error
	switch command {
	case "serve":
		err = runServer(ctx)
	case "simulate":
		err = runSimulation(ctx, os.Args[2:])
	default:
		err = fmt.Errorf("unknown command %q (expected serve, simulate or migrate)", command)
	}
	if err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func setupLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if config.Get().Environment == "development" {
		log.SetLevel(log.DebugLevel)
	}
}

// buildSimulator wires the full stack. Tickets persist to Postgres when a
// database is configured, otherwise they live in process memory.
func buildSimulator(ctx context.Context) (*application.Simulator, func(), error) {
	cfg := config.Get()

	var ticketRepo interfaces.TicketRepository
	cleanup := func() {}
	if cfg.UsesDatabase() {
		db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		cleanup = db.Close
		ticketRepo = repository.NewPostgresTicketRepository(db.Pool)
	} else {
		log.Info("No database configured, using in-memory ticket store")
		ticketRepo = repository.NewMemoryTicketRepository()
	}

	random := rng.NewCryptoSource()
	publisher := infrastructure.NewLogEventPublisher()
	rules := services.NewPrizeRules(random, cfg.PrizePolicy)
	factory := services.NewTicketFactory(random, rules, ticketRepo, publisher)
	scheduler := services.NewBatchScheduler(factory)
	aggregator := services.NewStatsAggregator()

	simulator := application.NewSimulator(scheduler, aggregator, ticketRepo, random, publisher)
	if err := simulator.LoadTickets(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return simulator, cleanup, nil
}

func runServer(ctx context.Context) error {
	simulator, cleanup, err := buildSimulator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(config.Get().ListenAddr, simulator)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSimulation(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("simulate", flag.ExitOnError)
	gameName := flags.String("game", string(entities.GameLotto645), "game to simulate (lotto645, speetto1000, pension720)")
	count := flags.Int("count", 100, "number of tickets to purchase")
	if err := flags.Parse(args); err != nil {
		return err
	}

	game, err := entities.ParseGame(*gameName)
	if err != nil {
		return err
	}

	simulator, cleanup, err := buildSimulator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	bar := pb.StartNew(*count)
	_, err = simulator.Purchase(ctx, interfaces.PurchaseRequest{
		Game:   game,
		Count:  *count,
		IsAuto: true,
	}, func(completed, total int) {
		bar.SetCurrent(int64(completed))
	})
	bar.Finish()
	if err != nil {
		return err
	}

	stats, err := simulator.Stats(game)
	if err != nil {
		return err
	}
	printStats(game, stats)
	return nil
}

func printStats(game entities.Game, stats entities.PurchaseStats) {
	fmt.Printf("\n%s results\n", game)
	fmt.Printf("  tickets:   %d\n", stats.TotalTickets)
	fmt.Printf("  spent:     ₩%d\n", stats.TotalSpent)
	fmt.Printf("  won:       ₩%d\n", stats.TotalWon)
	fmt.Printf("  wins:      %d\n", stats.WinCount)
	fmt.Printf("  win rate:  %.2f%%\n", stats.WinRate)
	fmt.Printf("  ROI:       %.2f%%\n", stats.ROI)
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: lottosim migrate [up|down] [steps]")
	}

	databaseURL := config.Get().GetDatabaseURL()
	switch os.Args[2] {
	case "up":
		return database.MigrateUp(databaseURL)
	case "down":
		steps := 1
		if len(os.Args) > 3 {
			parsed, err := strconv.Atoi(os.Args[3])
			if err != nil {
				return fmt.Errorf("invalid step count %q", os.Args[3])
			}
			steps = parsed
		}
		return database.MigrateDown(databaseURL, steps)
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}
