package bootcamps

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/events"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/geocode"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opencamp/bootcamp-mgmt/pkg/types"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("bootcamp-mgmt/bootcamps")

// earthRadiusMiles converts a linear distance to an angular radius when
// querying the spherical cap around a point.
const earthRadiusMiles = 3963.0

var (
	ErrNotFound         = errors.New("Bootcamp not found")
	ErrAlreadyPublished = errors.New("owner has already published a bootcamp")
	ErrBadRequest       = errors.New("bad request")
)

// NotFound tags an error as a missing bootcamp, naming the requested id.
func NotFound(id string) error {
	return fmt.Errorf("%w with id of %s", ErrNotFound, id)
}

type Config struct {
	// RadiusPaginated selects whether radius search honors page/limit
	// like the list endpoint or returns the full matching set.
	RadiusPaginated bool `yaml:"radiusPaginated"`
}

type BootcampManagement interface {
	Query(ctx context.Context, params map[string][]string) (types.Collection[types.Bootcamp], error)
	GetByID(ctx context.Context, bootcampID string) (types.Bootcamp, error)
	Create(ctx context.Context, b types.Bootcamp, privileged bool) (types.Bootcamp, error)
	Update(ctx context.Context, bootcampID string, fields map[string]any) (types.Bootcamp, error)
	Delete(ctx context.Context, bootcampID string) (types.Bootcamp, error)
	WithinRadius(ctx context.Context, zipcode string, distance float64, params map[string][]string) (types.Collection[types.Bootcamp], error)
	SetPhoto(ctx context.Context, bootcampID, filename string) error
}

//go:generate moq -rm -out bootcampstorage_mock.go . BootcampStorage
type BootcampStorage interface {
	AddBootcamp(ctx context.Context, b types.Bootcamp) error
	UpdateBootcamp(ctx context.Context, b types.Bootcamp) error
	DeleteBootcamp(ctx context.Context, bootcampID string) error
	SetPhoto(ctx context.Context, bootcampID, filename string) error
	GetBootcamp(ctx context.Context, conditions ...storage.ConditionFunc) (types.Bootcamp, error)
	QueryBootcamps(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Bootcamp], error)
	CoursesForBootcamps(ctx context.Context, bootcampIDs []string) (map[string][]types.Course, error)
}

type service struct {
	storage   BootcampStorage
	geocoder  geocode.Geocoder
	publisher events.Publisher
	config    *Config
}

func New(storage BootcampStorage, geocoder geocode.Geocoder, publisher events.Publisher, config *Config) BootcampManagement {
	if config == nil {
		config = &Config{}
	}

	return &service{
		storage:   storage,
		geocoder:  geocoder,
		publisher: publisher,
		config:    config,
	}
}

func (s *service) Query(ctx context.Context, params map[string][]string) (types.Collection[types.Bootcamp], error) {
	conditions, err := storage.ParseConditions(params)
	if err != nil {
		return types.Collection[types.Bootcamp]{}, fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
	}

	result, err := s.storage.QueryBootcamps(ctx, conditions...)
	if err != nil {
		return types.Collection[types.Bootcamp]{}, err
	}

	if slices.Contains(params["populate"], "courses") {
		err = s.populateCourses(ctx, result.Data)
		if err != nil {
			return types.Collection[types.Bootcamp]{}, err
		}
	}

	return result, nil
}

func (s *service) populateCourses(ctx context.Context, bootcamps []types.Bootcamp) error {
	if len(bootcamps) == 0 {
		return nil
	}

	ids := make([]string, 0, len(bootcamps))
	for _, b := range bootcamps {
		ids = append(ids, b.ID)
	}

	courses, err := s.storage.CoursesForBootcamps(ctx, ids)
	if err != nil {
		return err
	}

	for i := range bootcamps {
		bootcamps[i].Courses = courses[bootcamps[i].ID]
	}

	return nil
}

func (s *service) GetByID(ctx context.Context, bootcampID string) (types.Bootcamp, error) {
	b, err := s.storage.GetBootcamp(ctx, storage.WithID(bootcampID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Bootcamp{}, NotFound(bootcampID)
		}
		return types.Bootcamp{}, err
	}

	return b, nil
}

func (s *service) Create(ctx context.Context, b types.Bootcamp, privileged bool) (types.Bootcamp, error) {
	ctx, span := tracer.Start(ctx, "create-bootcamp")
	defer span.End()

	if b.Name == "" {
		return types.Bootcamp{}, fmt.Errorf("%w: a bootcamp needs a name", ErrBadRequest)
	}
	if b.Owner == "" {
		return types.Bootcamp{}, fmt.Errorf("%w: a bootcamp needs an owner", ErrBadRequest)
	}

	if !privileged {
		owned, err := s.storage.QueryBootcamps(ctx, storage.WithOwner(b.Owner))
		if err != nil {
			return types.Bootcamp{}, err
		}

		if owned.TotalCount > 0 {
			return types.Bootcamp{}, fmt.Errorf("%w: the user with id %s has already published a bootcamp", ErrAlreadyPublished, b.Owner)
		}
	}

	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	err := s.storage.AddBootcamp(ctx, b)
	if err != nil {
		return types.Bootcamp{}, err
	}

	created, err := s.storage.GetBootcamp(ctx, storage.WithID(b.ID))
	if err != nil {
		return types.Bootcamp{}, err
	}

	s.publisher.Publish(ctx, events.BootcampCreated, created)

	return created, nil
}

func (s *service) Update(ctx context.Context, bootcampID string, fields map[string]any) (types.Bootcamp, error) {
	ctx, span := tracer.Start(ctx, "update-bootcamp")
	defer span.End()

	b, err := s.storage.GetBootcamp(ctx, storage.WithID(bootcampID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Bootcamp{}, NotFound(bootcampID)
		}
		return types.Bootcamp{}, err
	}

	err = merge(&b, fields)
	if err != nil {
		return types.Bootcamp{}, err
	}

	err = s.storage.UpdateBootcamp(ctx, b)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Bootcamp{}, NotFound(bootcampID)
		}
		return types.Bootcamp{}, err
	}

	updated, err := s.storage.GetBootcamp(ctx, storage.WithID(bootcampID))
	if err != nil {
		return types.Bootcamp{}, err
	}

	s.publisher.Publish(ctx, events.BootcampUpdated, updated)

	return updated, nil
}

func merge(b *types.Bootcamp, fields map[string]any) error {
	asBool := func(v any) (bool, error) {
		value, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("%w: expected a boolean, got %v", ErrBadRequest, v)
		}
		return value, nil
	}

	asString := func(v any) (string, error) {
		value, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("%w: expected a string, got %v", ErrBadRequest, v)
		}
		return value, nil
	}

	var err error

	for k, v := range fields {
		switch k {
		case "id", "owner", "photo", "courses", "averageCost", "averageRating", "createdAt":
			// server derived, never merged from a request payload
		case "name":
			if b.Name, err = asString(v); err != nil {
				return err
			}
			if b.Name == "" {
				return fmt.Errorf("%w: a bootcamp needs a name", ErrBadRequest)
			}
		case "description":
			if b.Description, err = asString(v); err != nil {
				return err
			}
		case "website":
			if b.Website, err = asString(v); err != nil {
				return err
			}
		case "phone":
			if b.Phone, err = asString(v); err != nil {
				return err
			}
		case "email":
			if b.Email, err = asString(v); err != nil {
				return err
			}
		case "address":
			if b.Address, err = asString(v); err != nil {
				return err
			}
		case "careers":
			values, ok := v.([]any)
			if !ok {
				return fmt.Errorf("%w: expected a list of careers", ErrBadRequest)
			}
			careers := make([]string, 0, len(values))
			for _, c := range values {
				career, err := asString(c)
				if err != nil {
					return err
				}
				careers = append(careers, career)
			}
			b.Careers = careers
		case "housing":
			if b.Housing, err = asBool(v); err != nil {
				return err
			}
		case "jobAssistance":
			if b.JobAssistance, err = asBool(v); err != nil {
				return err
			}
		case "jobGuarantee":
			if b.JobGuarantee, err = asBool(v); err != nil {
				return err
			}
		case "acceptGi":
			if b.AcceptGI, err = asBool(v); err != nil {
				return err
			}
		case "location":
			values, ok := v.(map[string]any)
			if !ok {
				return fmt.Errorf("%w: expected a location object", ErrBadRequest)
			}
			if lat, ok := values["latitude"].(float64); ok {
				b.Location.Latitude = lat
			}
			if lon, ok := values["longitude"].(float64); ok {
				b.Location.Longitude = lon
			}
		default:
			return fmt.Errorf("%w: unknown field %s", ErrBadRequest, k)
		}
	}

	return nil
}

func (s *service) Delete(ctx context.Context, bootcampID string) (types.Bootcamp, error) {
	ctx, span := tracer.Start(ctx, "delete-bootcamp")
	defer span.End()

	b, err := s.storage.GetBootcamp(ctx, storage.WithID(bootcampID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Bootcamp{}, NotFound(bootcampID)
		}
		return types.Bootcamp{}, err
	}

	err = s.storage.DeleteBootcamp(ctx, bootcampID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Bootcamp{}, NotFound(bootcampID)
		}
		return types.Bootcamp{}, err
	}

	s.publisher.Publish(ctx, events.BootcampDeleted, b)

	return b, nil
}

func (s *service) WithinRadius(ctx context.Context, zipcode string, distance float64, params map[string][]string) (types.Collection[types.Bootcamp], error) {
	ctx, span := tracer.Start(ctx, "bootcamps-within-radius")
	defer span.End()

	if distance <= 0 {
		return types.Collection[types.Bootcamp]{}, fmt.Errorf("%w: distance must be positive", ErrBadRequest)
	}

	center, err := s.geocoder.Resolve(ctx, zipcode)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			return types.Collection[types.Bootcamp]{}, fmt.Errorf("%w: unknown postal code %s", ErrBadRequest, zipcode)
		}
		return types.Collection[types.Bootcamp]{}, err
	}

	radius := distance / earthRadiusMiles

	conditions := []storage.ConditionFunc{
		storage.WithinRadius(center.Longitude, center.Latitude, radius),
	}

	if s.config.RadiusPaginated {
		parsed, err := storage.ParseConditions(params)
		if err != nil {
			return types.Collection[types.Bootcamp]{}, fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
		}
		conditions = append(conditions, parsed...)
	} else {
		conditions = append(conditions, storage.WithoutPagination())
	}

	return s.storage.QueryBootcamps(ctx, conditions...)
}

func (s *service) SetPhoto(ctx context.Context, bootcampID, filename string) error {
	err := s.storage.SetPhoto(ctx, bootcampID, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return NotFound(bootcampID)
		}
		return err
	}

	return nil
}
