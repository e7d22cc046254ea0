package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/patrickmn/go-cache"
	"github.com/username/ridecost/src/config"
	"github.com/username/ridecost/src/database"
	"github.com/username/ridecost/src/logger"
	"github.com/username/ridecost/src/models"
	"github.com/username/ridecost/src/processors"
	"github.com/username/ridecost/src/services"
)

const usage = "usage: ridecost cost [portfolio-file] | ridecost rides [rides-file]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	switch args[0] {
	case "cost":
		path := pathArg(args, config.Cfg.PortfolioPath)
		return runCost(services.NewCostService(config.Cfg.MaxInputSizeBytes), path, out)

	case "rides":
		path := pathArg(args, config.Cfg.RidesPath)
		rideCache := cache.New(config.Cfg.RideCacheExpiration, config.Cfg.RideCacheCleanupInterval)
		rideService := services.NewRideService(rideCache, config.Cfg.MaxInputSizeBytes)

		var store services.RideStore
		if config.Cfg.DatabasePath != "" {
			logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
			if err := database.InitDB(config.Cfg.DatabasePath); err != nil {
				logger.L.Error("Failed to initialize database", "error", err)
				return 1
			}
			defer database.Close()
			store = services.NewRideStore(database.DB)
		}
		return runRides(context.Background(), rideService, store, path, config.Cfg.RideShape, out)

	default:
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}
}

func pathArg(args []string, fallback string) string {
	if len(args) > 1 {
		return args[1]
	}
	return fallback
}

// runCost prints the portfolio total. A malformed line ends the run with
// status 1 after reporting the line and the reason, and no total is printed.
func runCost(svc services.CostService, path string, out io.Writer) int {
	total, err := svc.TotalCost(path)

	var formatErr *models.FormatError
	if errors.As(err, &formatErr) {
		fmt.Fprintln(out, "Couldn't parse:", strconv.Quote(formatErr.Text))
		fmt.Fprintln(out, "Reason:", formatErr.Err)
		return 1
	}
	if err != nil {
		logger.L.Error("Failed to compute portfolio cost", "path", path, "error", err)
		return 1
	}

	fmt.Fprintln(out, strconv.FormatFloat(total, 'f', 2, 64))
	return 0
}

// runRides reads the ride file in shape, logs a summary for row shapes and
// imports the records when a store is configured.
func runRides(ctx context.Context, svc services.RideService, store services.RideStore, path string, shape models.Shape, out io.Writer) int {
	set, err := svc.Read(path, shape)
	if err != nil {
		logger.L.Error("Failed to read rides", "path", path, "shape", shape, "error", err)
		return 1
	}
	fmt.Fprintf(out, "Read %s as %s: %d\n", path, shape, set.Len())

	if !shape.IsRowShape() {
		return 0
	}

	records, err := set.Records()
	if err != nil {
		logger.L.Error("Failed to flatten rides", "error", err)
		return 1
	}
	summary := processors.SummarizeRides(records)
	logger.L.Info("Ride summary",
		"rows", summary.Rows,
		"totalRides", summary.TotalRides,
		"routes", len(summary.ByRoute),
		"years", len(summary.ByYear),
		"undatedRows", summary.UndatedRows)

	if store != nil {
		batchID, err := store.Import(ctx, path, records)
		if err != nil {
			logger.L.Error("Failed to import rides", "path", path, "error", err)
			return 1
		}
		fmt.Fprintf(out, "Imported batch %s\n", batchID)
	}
	return 0
}
