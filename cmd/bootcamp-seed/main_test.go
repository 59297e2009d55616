package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/matryer/is"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opencamp/bootcamp-mgmt/pkg/types"
)

func TestSelectMode(t *testing.T) {
	is := is.New(t)

	mode, err := selectMode(true, false, false)
	is.NoErr(err)
	is.Equal(mode, modeImport)

	mode, err = selectMode(false, true, false)
	is.NoErr(err)
	is.Equal(mode, modeDelete)

	mode, err = selectMode(false, false, true)
	is.NoErr(err)
	is.Equal(mode, modeRebuild)
}

func TestSelectModeRequiresExactlyOneFlag(t *testing.T) {
	is := is.New(t)

	_, err := selectMode(false, false, false)
	is.True(err != nil)

	_, err = selectMode(true, true, false)
	is.True(err != nil)

	_, err = selectMode(true, false, true)
	is.True(err != nil)

	_, err = selectMode(true, true, true)
	is.True(err != nil)
}

func testSetup(t *testing.T) (context.Context, *storage.Storage) {
	ctx := context.Background()

	s, err := storage.New(ctx, storage.NewConfig(
		"localhost", "postgres", "password", "5432", "postgres", "disable",
	))
	if err != nil {
		t.SkipNow()
	}

	err = s.Initialize(ctx)
	if err != nil {
		t.SkipNow()
	}

	return ctx, s
}

func writeFixtures(t *testing.T, bootcampID, courseID string) string {
	is := is.New(t)
	dir := t.TempDir()

	bootcamps := `[{
		"id": "` + bootcampID + `",
		"name": "Devworks Bootcamp",
		"description": "Devworks is a full stack JavaScript bootcamp",
		"location": { "latitude": 42.3505, "longitude": -71.1054 },
		"owner": "user-1"
	}]`
	courses := `[{
		"id": "` + courseID + `",
		"title": "Front End Web Development",
		"weeks": 8,
		"tuition": 6000,
		"bootcampId": "` + bootcampID + `",
		"owner": "user-1"
	}]`

	is.NoErr(os.WriteFile(filepath.Join(dir, "bootcamps.json"), []byte(bootcamps), 0o600))
	is.NoErr(os.WriteFile(filepath.Join(dir, "courses.json"), []byte(courses), 0o600))

	return dir
}

func TestRebuildReplacesExistingData(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	stale := types.Bootcamp{
		ID:    uuid.NewString(),
		Name:  "Stale Bootcamp " + uuid.NewString()[0:8],
		Owner: uuid.NewString(),
	}
	is.NoErr(s.AddBootcamp(ctx, stale))

	bootcampID := uuid.NewString()
	dir := writeFixtures(t, bootcampID, uuid.NewString())

	err := run(ctx, s, modeRebuild, dir)
	is.NoErr(err)

	_, err = s.GetBootcamp(ctx, storage.WithID(stale.ID))
	is.True(errors.Is(err, storage.ErrNoRows))

	seeded, err := s.GetBootcamp(ctx, storage.WithID(bootcampID))
	is.NoErr(err)
	is.Equal(seeded.Name, "Devworks Bootcamp")
	is.Equal(seeded.AverageCost, 6000.0)
}

func TestDeleteModeStopsBeforeImporting(t *testing.T) {
	ctx, s := testSetup(t)
	is := is.New(t)

	bootcampID := uuid.NewString()
	dir := writeFixtures(t, bootcampID, uuid.NewString())

	err := run(ctx, s, modeDelete, dir)
	is.NoErr(err)

	_, err = s.GetBootcamp(ctx, storage.WithID(bootcampID))
	is.True(errors.Is(err, storage.ErrNoRows))
}
