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

func bootcampData(b types.Bootcamp) []byte {
	data, _ := json.Marshal(b)

	var m map[string]any
	json.Unmarshal(data, &m)

	delete(m, "id")
	delete(m, "owner")
	delete(m, "photo")
	delete(m, "location")
	delete(m, "courses")
	delete(m, "createdAt")

	data, _ = json.Marshal(m)

	return data
}

func (s *Storage) AddBootcamp(ctx context.Context, b types.Bootcamp) error {
	args := pgx.NamedArgs{
		"bootcamp_id": b.ID,
		"owner":       b.Owner,
		"data":        string(bootcampData(b)),
		"lat":         b.Location.Latitude,
		"lon":         b.Location.Longitude,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO bootcamps (bootcamp_id, owner, data, location)
		VALUES (@bootcamp_id, @owner, @data, point(@lon,@lat))
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

func (s *Storage) UpdateBootcamp(ctx context.Context, b types.Bootcamp) error {
	args := pgx.NamedArgs{
		"bootcamp_id": b.ID,
		"data":        string(bootcampData(b)),
		"lat":         b.Location.Latitude,
		"lon":         b.Location.Longitude,
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE bootcamps
		SET data = @data, location = point(@lon,@lat), modified_on = CURRENT_TIMESTAMP
		WHERE bootcamp_id = @bootcamp_id
	`, args)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

// DeleteBootcamp removes a bootcamp and all of its courses in one transaction.
func (s *Storage) DeleteBootcamp(ctx context.Context, bootcampID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"bootcamp_id": bootcampID}

	_, err = tx.Exec(ctx, `DELETE FROM courses WHERE bootcamp_id = @bootcamp_id`, args)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM bootcamps WHERE bootcamp_id = @bootcamp_id`, args)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return tx.Commit(ctx)
}

func (s *Storage) SetPhoto(ctx context.Context, bootcampID, filename string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE bootcamps
		SET photo = @photo, modified_on = CURRENT_TIMESTAMP
		WHERE bootcamp_id = @bootcamp_id
	`, pgx.NamedArgs{
		"bootcamp_id": bootcampID,
		"photo":       filename,
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

// UpdateAverageCost recalculates the denormalized average tuition of a
// bootcamp from its courses.
func (s *Storage) UpdateAverageCost(ctx context.Context, bootcampID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE bootcamps
		SET data = jsonb_set(data, '{averageCost}', to_jsonb(sub.average), true), modified_on = CURRENT_TIMESTAMP
		FROM (
			SELECT COALESCE(AVG((data->>'tuition')::numeric), 0) AS average
			FROM courses
			WHERE bootcamp_id = @bootcamp_id
		) sub
		WHERE bootcamp_id = @bootcamp_id
	`, pgx.NamedArgs{"bootcamp_id": bootcampID})

	return err
}

func scanBootcamp(id, owner string, photo pgtype.Text, location pgtype.Point, createdOn pgtype.Timestamptz, data json.RawMessage) (types.Bootcamp, error) {
	var b types.Bootcamp

	err := json.Unmarshal(data, &b)
	if err != nil {
		return types.Bootcamp{}, err
	}

	b.ID = id
	b.Owner = owner
	b.Photo = photo.String
	b.Location = types.Location{
		Latitude:  location.P.Y,
		Longitude: location.P.X,
	}
	b.CreatedAt = createdOn.Time

	return b, nil
}

func (s *Storage) GetBootcamp(ctx context.Context, conditions ...ConditionFunc) (types.Bootcamp, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.Where()

	var id, owner string
	var photo pgtype.Text
	var location pgtype.Point
	var createdOn pgtype.Timestamptz
	var data json.RawMessage

	query := fmt.Sprintf(`
		SELECT bootcamp_id, owner, photo, location, created_on, data
		FROM bootcamps
		%s
	`, where)

	err := s.pool.QueryRow(ctx, query, args).Scan(&id, &owner, &photo, &location, &createdOn, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Bootcamp{}, ErrNoRows
		}
		return types.Bootcamp{}, err
	}

	return scanBootcamp(id, owner, photo, location, createdOn, data)
}

func (s *Storage) QueryBootcamps(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Bootcamp], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.Where()

	var id, owner string
	var photo pgtype.Text
	var location pgtype.Point
	var createdOn pgtype.Timestamptz
	var data json.RawMessage
	var count int64

	offsetLimit := ""
	if !condition.unpaginated {
		offsetLimit = fmt.Sprintf("OFFSET %d LIMIT %d", condition.Offset(), condition.Limit())
	}

	query := fmt.Sprintf(`
		SELECT bootcamp_id, owner, photo, location, created_on, data, count(*) OVER () AS count
		FROM bootcamps
		%s
		%s
		%s
	`, where, condition.OrderBy(), offsetLimit)

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.Bootcamp]{}, err
	}

	bootcamps := make([]types.Bootcamp, 0)

	_, err = pgx.ForEachRow(rows, []any{&id, &owner, &photo, &location, &createdOn, &data, &count}, func() error {
		b, err := scanBootcamp(id, owner, photo, location, createdOn, data)
		if err != nil {
			return err
		}
		bootcamps = append(bootcamps, b)
		return nil
	})
	if err != nil {
		return types.Collection[types.Bootcamp]{}, err
	}

	result := types.Collection[types.Bootcamp]{
		Data:       bootcamps,
		Count:      uint64(len(bootcamps)),
		TotalCount: uint64(count),
	}

	if !condition.unpaginated {
		result.Offset = uint64(condition.Offset())
		result.Limit = uint64(condition.Limit())
	}

	return result, nil
}
