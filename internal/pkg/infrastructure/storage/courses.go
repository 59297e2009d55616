package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/opencamp/bootcamp-mgmt/pkg/types"
)

func courseData(c types.Course) []byte {
	data, _ := json.Marshal(c)

	var m map[string]any
	json.Unmarshal(data, &m)

	delete(m, "id")
	delete(m, "bootcampId")
	delete(m, "owner")
	delete(m, "createdAt")

	data, _ = json.Marshal(m)

	return data
}

func (s *Storage) AddCourse(ctx context.Context, c types.Course) error {
	args := pgx.NamedArgs{
		"course_id":   c.ID,
		"bootcamp_id": c.BootcampID,
		"owner":       c.Owner,
		"data":        string(courseData(c)),
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO courses (course_id, bootcamp_id, owner, data)
		VALUES (@course_id, @bootcamp_id, @owner, @data)
	`, args)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExist
		}
		return err
	}

	return nil
}

func (s *Storage) UpdateCourse(ctx context.Context, c types.Course) error {
	args := pgx.NamedArgs{
		"course_id": c.ID,
		"data":      string(courseData(c)),
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE courses
		SET data = @data, modified_on = CURRENT_TIMESTAMP
		WHERE course_id = @course_id
	`, args)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

func (s *Storage) DeleteCourse(ctx context.Context, courseID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM courses WHERE course_id = @course_id
	`, pgx.NamedArgs{"course_id": courseID})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

func scanCourse(id, bootcampID, owner string, createdOn pgtype.Timestamptz, data json.RawMessage) (types.Course, error) {
	var c types.Course

	err := json.Unmarshal(data, &c)
	if err != nil {
		return types.Course{}, err
	}

	c.ID = id
	c.BootcampID = bootcampID
	c.Owner = owner
	c.CreatedAt = createdOn.Time

	return c, nil
}

func (s *Storage) GetCourse(ctx context.Context, conditions ...ConditionFunc) (types.Course, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.courseWhere()

	var id, bootcampID, owner string
	var createdOn pgtype.Timestamptz
	var data json.RawMessage

	query := fmt.Sprintf(`
		SELECT course_id, bootcamp_id, owner, created_on, data
		FROM courses
		%s
	`, where)

	err := s.pool.QueryRow(ctx, query, args).Scan(&id, &bootcampID, &owner, &createdOn, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Course{}, ErrNoRows
		}
		return types.Course{}, err
	}

	return scanCourse(id, bootcampID, owner, createdOn, data)
}

func (s *Storage) QueryCourses(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Course], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.courseWhere()

	var id, bootcampID, owner string
	var createdOn pgtype.Timestamptz
	var data json.RawMessage
	var count int64

	offsetLimit := ""
	if !condition.unpaginated {
		offsetLimit = fmt.Sprintf("OFFSET %d LIMIT %d", condition.Offset(), condition.Limit())
	}

	query := fmt.Sprintf(`
		SELECT course_id, bootcamp_id, owner, created_on, data, count(*) OVER () AS count
		FROM courses
		%s
		%s
		%s
	`, where, condition.OrderBy(), offsetLimit)

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.Course]{}, err
	}

	courses := make([]types.Course, 0)

	_, err = pgx.ForEachRow(rows, []any{&id, &bootcampID, &owner, &createdOn, &data, &count}, func() error {
		c, err := scanCourse(id, bootcampID, owner, createdOn, data)
		if err != nil {
			return err
		}
		courses = append(courses, c)
		return nil
	})
	if err != nil {
		return types.Collection[types.Course]{}, err
	}

	result := types.Collection[types.Course]{
		Data:       courses,
		Count:      uint64(len(courses)),
		TotalCount: uint64(count),
	}

	if !condition.unpaginated {
		result.Offset = uint64(condition.Offset())
		result.Limit = uint64(condition.Limit())
	}

	return result, nil
}

// CoursesForBootcamps fetches the courses of several bootcamps in one query,
// used when course population is requested on a bootcamp listing.
func (s *Storage) CoursesForBootcamps(ctx context.Context, bootcampIDs []string) (map[string][]types.Course, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT course_id, bootcamp_id, owner, created_on, data
		FROM courses
		WHERE bootcamp_id = ANY(@bootcamp_ids)
		ORDER BY created_on DESC
	`, pgx.NamedArgs{"bootcamp_ids": bootcampIDs})
	if err != nil {
		return nil, err
	}

	var id, bootcampID, owner string
	var createdOn pgtype.Timestamptz
	var data json.RawMessage

	result := map[string][]types.Course{}

	_, err = pgx.ForEachRow(rows, []any{&id, &bootcampID, &owner, &createdOn, &data}, func() error {
		c, err := scanCourse(id, bootcampID, owner, createdOn, data)
		if err != nil {
			return err
		}
		result[c.BootcampID] = append(result[c.BootcampID], c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
