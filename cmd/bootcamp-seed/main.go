package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/logging"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/storage"
	"github.com/rs/zerolog"
)

const serviceName string = "bootcamp-seed"

type seedMode int

const (
	modeImport seedMode = iota
	modeDelete
	modeRebuild
)

func main() {
	importData := flag.Bool("i", false, "import fixture data into the database")
	deleteData := flag.Bool("d", false, "delete all data from the database")
	rebuildData := flag.Bool("b", false, "delete all data, then import fixture data")
	dataDir := flag.String("data", "./data", "directory holding bootcamps.json and courses.json")
	flag.Parse()

	ctx, logger := logging.NewLogger(context.Background(), serviceName, "")

	mode, err := selectMode(*importData, *deleteData, *rebuildData)
	exitIf(err, logger, "invalid arguments")

	s, err := storage.New(ctx, storage.NewConfig(
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		envOrDefault("POSTGRES_PORT", "5432"),
		envOrDefault("POSTGRES_DBNAME", "opencamp"),
		envOrDefault("POSTGRES_SSLMODE", "disable"),
	))
	exitIf(err, logger, "could not connect to database")
	defer s.Close()

	err = s.Initialize(ctx)
	exitIf(err, logger, "could not create database tables")

	err = run(ctx, s, mode, *dataDir)
	exitIf(err, logger, "seeding failed")

	switch mode {
	case modeDelete:
		logger.Info().Msg("data destroyed")
	case modeRebuild:
		logger.Info().Msg("data rebuilt")
	default:
		logger.Info().Msg("data imported")
	}
}

func selectMode(importData, deleteData, rebuildData bool) (seedMode, error) {
	switch {
	case importData && !deleteData && !rebuildData:
		return modeImport, nil
	case deleteData && !importData && !rebuildData:
		return modeDelete, nil
	case rebuildData && !importData && !deleteData:
		return modeRebuild, nil
	}

	return 0, errors.New("specify exactly one of -i, -d and -b")
}

func run(ctx context.Context, s *storage.Storage, mode seedMode, dataDir string) error {
	if mode == modeDelete || mode == modeRebuild {
		if err := storage.DeleteAll(ctx, s); err != nil {
			return fmt.Errorf("could not delete data: %w", err)
		}

		if mode == modeDelete {
			return nil
		}
	}

	bootcamps, err := os.Open(filepath.Join(dataDir, "bootcamps.json"))
	if err != nil {
		return fmt.Errorf("could not open bootcamp fixtures: %w", err)
	}

	if err := storage.SeedBootcamps(ctx, s, bootcamps); err != nil {
		return fmt.Errorf("could not seed bootcamps: %w", err)
	}

	courses, err := os.Open(filepath.Join(dataDir, "courses.json"))
	if err != nil {
		return fmt.Errorf("could not open course fixtures: %w", err)
	}

	if err := storage.SeedCourses(ctx, s, courses); err != nil {
		return fmt.Errorf("could not seed courses: %w", err)
	}

	return nil
}

func envOrDefault(name, def string) string {
	if value, ok := os.LookupEnv(name); ok {
		return value
	}
	return def
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Fatal().Err(err).Msg(msg)
	}
}
