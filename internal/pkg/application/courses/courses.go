package courses

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/events"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opencamp/bootcamp-mgmt/pkg/types"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("bootcamp-mgmt/courses")

var (
	ErrNotFound         = errors.New("Course not found")
	ErrBootcampNotFound = errors.New("Bootcamp not found")
	ErrBadRequest       = errors.New("bad request")
)

// NotFound tags an error as a missing course, naming the requested id.
func NotFound(id string) error {
	return fmt.Errorf("%w with id of %s", ErrNotFound, id)
}

type CourseManagement interface {
	Query(ctx context.Context, params map[string][]string) (types.Collection[types.Course], error)
	QueryByBootcamp(ctx context.Context, bootcampID string, params map[string][]string) (types.Collection[types.Course], error)
	GetByID(ctx context.Context, courseID string) (types.Course, error)
	Create(ctx context.Context, c types.Course) (types.Course, error)
	Update(ctx context.Context, courseID string, fields map[string]any) (types.Course, error)
	Delete(ctx context.Context, courseID string) (types.Course, error)
}

//go:generate moq -rm -out coursestorage_mock.go . CourseStorage
type CourseStorage interface {
	AddCourse(ctx context.Context, c types.Course) error
	UpdateCourse(ctx context.Context, c types.Course) error
	DeleteCourse(ctx context.Context, courseID string) error
	GetCourse(ctx context.Context, conditions ...storage.ConditionFunc) (types.Course, error)
	QueryCourses(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Course], error)
	GetBootcamp(ctx context.Context, conditions ...storage.ConditionFunc) (types.Bootcamp, error)
	UpdateAverageCost(ctx context.Context, bootcampID string) error
}

type service struct {
	storage   CourseStorage
	publisher events.Publisher
}

func New(storage CourseStorage, publisher events.Publisher) CourseManagement {
	return &service{
		storage:   storage,
		publisher: publisher,
	}
}

func (s *service) Query(ctx context.Context, params map[string][]string) (types.Collection[types.Course], error) {
	conditions, err := storage.ParseConditions(params)
	if err != nil {
		return types.Collection[types.Course]{}, fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
	}

	return s.storage.QueryCourses(ctx, conditions...)
}

func (s *service) QueryByBootcamp(ctx context.Context, bootcampID string, params map[string][]string) (types.Collection[types.Course], error) {
	conditions, err := storage.ParseConditions(params)
	if err != nil {
		return types.Collection[types.Course]{}, fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
	}

	conditions = append(conditions, storage.WithBootcampID(bootcampID))

	return s.storage.QueryCourses(ctx, conditions...)
}

func (s *service) GetByID(ctx context.Context, courseID string) (types.Course, error) {
	c, err := s.storage.GetCourse(ctx, storage.WithID(courseID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Course{}, NotFound(courseID)
		}
		return types.Course{}, err
	}

	return c, nil
}

func (s *service) Create(ctx context.Context, c types.Course) (types.Course, error) {
	ctx, span := tracer.Start(ctx, "create-course")
	defer span.End()

	if c.Title == "" {
		return types.Course{}, fmt.Errorf("%w: a course needs a title", ErrBadRequest)
	}

	_, err := s.storage.GetBootcamp(ctx, storage.WithID(c.BootcampID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Course{}, fmt.Errorf("%w with id of %s", ErrBootcampNotFound, c.BootcampID)
		}
		return types.Course{}, err
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	err = s.storage.AddCourse(ctx, c)
	if err != nil {
		return types.Course{}, err
	}

	err = s.storage.UpdateAverageCost(ctx, c.BootcampID)
	if err != nil {
		return types.Course{}, err
	}

	created, err := s.storage.GetCourse(ctx, storage.WithID(c.ID))
	if err != nil {
		return types.Course{}, err
	}

	s.publisher.Publish(ctx, events.CourseCreated, created)

	return created, nil
}

func (s *service) Update(ctx context.Context, courseID string, fields map[string]any) (types.Course, error) {
	ctx, span := tracer.Start(ctx, "update-course")
	defer span.End()

	c, err := s.storage.GetCourse(ctx, storage.WithID(courseID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Course{}, NotFound(courseID)
		}
		return types.Course{}, err
	}

	err = merge(&c, fields)
	if err != nil {
		return types.Course{}, err
	}

	err = s.storage.UpdateCourse(ctx, c)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Course{}, NotFound(courseID)
		}
		return types.Course{}, err
	}

	err = s.storage.UpdateAverageCost(ctx, c.BootcampID)
	if err != nil {
		return types.Course{}, err
	}

	updated, err := s.storage.GetCourse(ctx, storage.WithID(courseID))
	if err != nil {
		return types.Course{}, err
	}

	s.publisher.Publish(ctx, events.CourseUpdated, updated)

	return updated, nil
}

func merge(c *types.Course, fields map[string]any) error {
	for k, v := range fields {
		switch k {
		case "id", "bootcampId", "owner", "createdAt":
			// server derived, never merged from a request payload
		case "title":
			title, ok := v.(string)
			if !ok || title == "" {
				return fmt.Errorf("%w: a course needs a title", ErrBadRequest)
			}
			c.Title = title
		case "description":
			if value, ok := v.(string); ok {
				c.Description = value
			}
		case "weeks":
			value, ok := v.(float64)
			if !ok {
				return fmt.Errorf("%w: expected a number of weeks, got %v", ErrBadRequest, v)
			}
			c.Weeks = int(value)
		case "tuition":
			value, ok := v.(float64)
			if !ok {
				return fmt.Errorf("%w: expected a tuition amount, got %v", ErrBadRequest, v)
			}
			c.Tuition = value
		case "minimumSkill":
			if value, ok := v.(string); ok {
				c.MinimumSkill = value
			}
		case "scholarshipAvailable":
			value, ok := v.(bool)
			if !ok {
				return fmt.Errorf("%w: expected a boolean, got %v", ErrBadRequest, v)
			}
			c.ScholarshipAvailable = value
		default:
			return fmt.Errorf("%w: unknown field %s", ErrBadRequest, k)
		}
	}

	return nil
}

func (s *service) Delete(ctx context.Context, courseID string) (types.Course, error) {
	ctx, span := tracer.Start(ctx, "delete-course")
	defer span.End()

	c, err := s.storage.GetCourse(ctx, storage.WithID(courseID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Course{}, NotFound(courseID)
		}
		return types.Course{}, err
	}

	err = s.storage.DeleteCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Course{}, NotFound(courseID)
		}
		return types.Course{}, err
	}

	err = s.storage.UpdateAverageCost(ctx, c.BootcampID)
	if err != nil {
		return types.Course{}, err
	}

	s.publisher.Publish(ctx, events.CourseDeleted, c)

	return c, nil
}
