package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/opencamp/bootcamp-mgmt/pkg/types"
	"github.com/rs/zerolog"
)

// SeedBootcamps loads bootcamp fixtures from a JSON array and stores them.
// Records without an id are assigned one.
func SeedBootcamps(ctx context.Context, s *Storage, r io.ReadCloser) error {
	log := zerolog.Ctx(ctx)
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var bootcamps []types.Bootcamp
	err = json.Unmarshal(b, &bootcamps)
	if err != nil {
		return err
	}

	log.Info().Int("count", len(bootcamps)).Msg("loaded bootcamps from file")

	var errs []error

	for _, bc := range bootcamps {
		if bc.ID == "" {
			bc.ID = uuid.New().String()
		}

		err := s.AddBootcamp(ctx, bc)
		if err != nil && !errors.Is(err, ErrAlreadyExist) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// SeedCourses loads course fixtures from a JSON array and stores them,
// recalculating the average tuition of every bootcamp that gained courses.
func SeedCourses(ctx context.Context, s *Storage, r io.ReadCloser) error {
	log := zerolog.Ctx(ctx)
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var courses []types.Course
	err = json.Unmarshal(b, &courses)
	if err != nil {
		return err
	}

	log.Info().Int("count", len(courses)).Msg("loaded courses from file")

	var errs []error

	touched := map[string]struct{}{}

	for _, c := range courses {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}

		err := s.AddCourse(ctx, c)
		if err != nil {
			if !errors.Is(err, ErrAlreadyExist) {
				errs = append(errs, err)
			}
			continue
		}

		touched[c.BootcampID] = struct{}{}
	}

	for bootcampID := range touched {
		errs = append(errs, s.UpdateAverageCost(ctx, bootcampID))
	}

	return errors.Join(errs...)
}

// DeleteAll removes every seeded record of both kinds.
func DeleteAll(ctx context.Context, s *Storage) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM courses`)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `DELETE FROM bootcamps`)
	if err != nil {
		return err
	}

	return nil
}
