package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"example.com/ftracker/internal/config"
	"example.com/ftracker/internal/domain"
	"example.com/ftracker/internal/tracker"
)

// samplePackages is what the sensor block reports when no feed file is configured.
var samplePackages = []domain.SensorPackage{
	{Code: "SWM", Values: []float64{720, 1, 80, 25, 40}},
	{Code: "RUN", Values: []float64{15000, 1, 75}},
	{Code: "WLK", Values: []float64{9000, 1, 75, 180}},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pkgs, err := loadPackages(cfg.PackagesFile)
	if err != nil {
		log.Fatalf("failed to read sensor packages: %v", err)
	}

	svc := tracker.NewService(
		tracker.WithConcurrency(cfg.BatchConcurrency),
		tracker.WithLogger(log.New(os.Stderr, "[tracker] ", log.LstdFlags)),
	)

	rep, err := svc.ProcessBatch(ctx, pkgs, os.Stdout)
	if err != nil {
		log.Fatalf("processing aborted: %v", err)
	}
	if rep.Skipped > 0 {
		log.Printf("processed %d packages, skipped %d", rep.Processed, rep.Skipped)
	}
}

func loadPackages(path string) ([]domain.SensorPackage, error) {
	if path == "" {
		return samplePackages, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pkgs []domain.SensorPackage
	if err := json.NewDecoder(f).Decode(&pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}
