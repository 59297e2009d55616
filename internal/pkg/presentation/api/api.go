package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/bootcamps"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/courses"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/presentation/api/auth"
	"github.com/opencamp/bootcamp-mgmt/pkg/types"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("bootcamp-mgmt/api")

type Config struct {
	MaxFileUploadSize int64  `yaml:"maxFileUploadSize"`
	FileUploadPath    string `yaml:"fileUploadPath"`
}

// NewAuthenticator wires token verification to this package's error
// envelope, so auth failures look like every other failure.
func NewAuthenticator(secret []byte) *auth.Authenticator {
	return auth.New(secret, writeErrorMessage)
}

func RegisterHandlers(ctx context.Context, router *chi.Mux, cfg Config, authn *auth.Authenticator, bootcampSvc bootcamps.BootcampManagement, courseSvc courses.CourseManagement) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := zerolog.Ctx(ctx)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/bootcamps", func(r chi.Router) {
			r.Get("/", queryBootcampsHandler(*log, bootcampSvc))
			r.Get("/radius/{zipcode}/{distance}", bootcampsInRadiusHandler(*log, bootcampSvc))
			r.Get("/{bootcampID}", getBootcampHandler(*log, bootcampSvc))
			r.Get("/{bootcampID}/courses", queryCoursesByBootcampHandler(*log, courseSvc))

			r.Group(func(r chi.Router) {
				r.Use(authn.Verifier())
				r.Use(authn.RequireRole(auth.RolePublisher, auth.RoleAdmin))

				r.Post("/", createBootcampHandler(*log, bootcampSvc))
				r.Put("/{bootcampID}", updateBootcampHandler(*log, bootcampSvc))
				r.Delete("/{bootcampID}", deleteBootcampHandler(*log, bootcampSvc))
				r.Put("/{bootcampID}/photo", uploadPhotoHandler(*log, bootcampSvc, cfg))
				r.Post("/{bootcampID}/courses", createCourseHandler(*log, bootcampSvc, courseSvc))
			})
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", queryCoursesHandler(*log, courseSvc))
			r.Get("/{courseID}", getCourseHandler(*log, courseSvc))

			r.Group(func(r chi.Router) {
				r.Use(authn.Verifier())
				r.Use(authn.RequireRole(auth.RolePublisher, auth.RoleAdmin))

				r.Put("/{courseID}", updateCourseHandler(*log, courseSvc))
				r.Delete("/{courseID}", deleteCourseHandler(*log, courseSvc))
			})
		})
	})

	return router, nil
}

func selectedFields(r *http.Request) []string {
	raw := r.URL.Query().Get("select")
	if raw == "" {
		return nil
	}

	fields := []string{}
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func writeResponse(w http.ResponseWriter, status int, response apiResponse) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response.Byte())
}

func queryBootcampsHandler(log zerolog.Logger, svc bootcamps.BootcampManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-bootcamps")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		result, err := svc.Query(ctx, r.URL.Query())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, collectionResponse(result, selectedFields(r)))
	}
}

func getBootcampHandler(log zerolog.Logger, svc bootcamps.BootcampManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-bootcamp")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		bootcampID := chi.URLParam(r, "bootcampID")
		if _, err = uuid.Parse(bootcampID); err != nil {
			// a malformed id is indistinguishable from a missing record
			err = bootcamps.NotFound(bootcampID)
			writeError(w, r, err)
			return
		}

		b, err := svc.GetByID(ctx, bootcampID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, entityResponse(b))
	}
}

func createBootcampHandler(log zerolog.Logger, svc bootcamps.BootcampManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "create-bootcamp")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		principal, ok := auth.GetPrincipal(ctx)
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "not authorized to access this route")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			err = fmt.Errorf("%w: unable to read body", bootcamps.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		var b types.Bootcamp
		err = json.Unmarshal(body, &b)
		if err != nil {
			err = fmt.Errorf("%w: unable to unmarshal body", bootcamps.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		// server derived fields are never taken from the request
		b.ID = ""
		b.Owner = principal.ID
		b.Photo = ""
		b.Courses = nil
		b.AverageCost = 0
		b.AverageRating = 0

		bootcamp, err := svc.Create(ctx, b, principal.Admin())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusCreated, entityResponse(bootcamp))
	}
}

func updateBootcampHandler(log zerolog.Logger, svc bootcamps.BootcampManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "update-bootcamp")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		bootcampID := chi.URLParam(r, "bootcampID")
		if _, err = uuid.Parse(bootcampID); err != nil {
			err = bootcamps.NotFound(bootcampID)
			writeError(w, r, err)
			return
		}

		if err = requireBootcampOwnership(ctx, svc, bootcampID); err != nil {
			writeError(w, r, err)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			err = fmt.Errorf("%w: unable to read body", bootcamps.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		var fields map[string]any
		err = json.Unmarshal(body, &fields)
		if err != nil {
			err = fmt.Errorf("%w: unable to unmarshal body into map", bootcamps.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		b, err := svc.Update(ctx, bootcampID, fields)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, entityResponse(b))
	}
}

func deleteBootcampHandler(log zerolog.Logger, svc bootcamps.BootcampManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "delete-bootcamp")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		bootcampID := chi.URLParam(r, "bootcampID")
		if _, err = uuid.Parse(bootcampID); err != nil {
			err = bootcamps.NotFound(bootcampID)
			writeError(w, r, err)
			return
		}

		if err = requireBootcampOwnership(ctx, svc, bootcampID); err != nil {
			writeError(w, r, err)
			return
		}

		b, err := svc.Delete(ctx, bootcampID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, entityResponse(b))
	}
}

func bootcampsInRadiusHandler(log zerolog.Logger, svc bootcamps.BootcampManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "bootcamps-in-radius")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		zipcode := chi.URLParam(r, "zipcode")

		distance, err := strconv.ParseFloat(chi.URLParam(r, "distance"), 64)
		if err != nil {
			err = fmt.Errorf("%w: distance must be a number", bootcamps.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		result, err := svc.WithinRadius(ctx, zipcode, distance, r.URL.Query())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, collectionResponse(result, selectedFields(r)))
	}
}

func uploadPhotoHandler(log zerolog.Logger, svc bootcamps.BootcampManagement, cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "upload-bootcamp-photo")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		bootcampID := chi.URLParam(r, "bootcampID")
		if _, err = uuid.Parse(bootcampID); err != nil {
			err = bootcamps.NotFound(bootcampID)
			writeError(w, r, err)
			return
		}

		if err = requireBootcampOwnership(ctx, svc, bootcampID); err != nil {
			writeError(w, r, err)
			return
		}

		err = r.ParseMultipartForm(cfg.MaxFileUploadSize)
		if err != nil {
			err = fmt.Errorf("%w: please upload a file", bootcamps.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			err = fmt.Errorf("%w: please upload a file", bootcamps.ErrBadRequest)
			writeError(w, r, err)
			return
		}
		defer file.Close()

		if header.Size > cfg.MaxFileUploadSize {
			err = fmt.Errorf("%w: please upload an image less than %d bytes", bootcamps.ErrBadRequest, cfg.MaxFileUploadSize)
			writeError(w, r, err)
			return
		}

		if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
			err = fmt.Errorf("%w: please upload an image file", bootcamps.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		// concurrent uploads for the same bootcamp race on this path,
		// last write wins
		filename := bootcampID + filepath.Ext(header.Filename)

		err = saveFile(file, filepath.Join(cfg.FileUploadPath, filename))
		if err != nil {
			writeError(w, r, err)
			return
		}

		err = svc.SetPhoto(ctx, bootcampID, filename)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, entityResponse(filename))
	}
}

func saveFile(file io.Reader, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, file)
	return err
}

// requireBootcampOwnership allows admins through and everyone else only if
// they own the target bootcamp. A missing bootcamp surfaces as not found.
func requireBootcampOwnership(ctx context.Context, svc bootcamps.BootcampManagement, bootcampID string) error {
	principal, ok := auth.GetPrincipal(ctx)
	if !ok {
		return errForbidden
	}

	b, err := svc.GetByID(ctx, bootcampID)
	if err != nil {
		return err
	}

	if !principal.Admin() && b.Owner != principal.ID {
		return errForbidden
	}

	return nil
}
