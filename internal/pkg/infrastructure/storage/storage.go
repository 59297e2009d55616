package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows       = errors.New("no rows in result set")
	ErrStoreFailed  = errors.New("could not store data")
	ErrAlreadyExist = errors.New("record already exists")
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Initialize(ctx context.Context) error {
	return s.createTables(ctx)
}

func (s *Storage) createTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS bootcamps (
			bootcamp_id	TEXT 	NOT NULL,
			owner		TEXT 	NOT NULL,
			data 		JSONB	NOT NULL,
			photo		TEXT	NULL,
			location 	POINT 	NULL,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_bootcamps PRIMARY KEY (bootcamp_id)
		);

		CREATE TABLE IF NOT EXISTS courses (
			course_id	TEXT 	NOT NULL,
			bootcamp_id	TEXT 	NOT NULL,
			owner		TEXT 	NOT NULL,
			data 		JSONB	NOT NULL,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_courses PRIMARY KEY (course_id)
		);

		CREATE INDEX IF NOT EXISTS bootcamps_name_idx ON bootcamps ((data ->> 'name'));
		CREATE INDEX IF NOT EXISTS bootcamps_owner_idx ON bootcamps (owner);
		CREATE INDEX IF NOT EXISTS courses_bootcamp_idx ON courses (bootcamp_id);
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}
