package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/bootcamps"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/courses"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/presentation/api/auth"
	"github.com/opencamp/bootcamp-mgmt/pkg/types"
	"github.com/rs/zerolog"
)

func queryCoursesHandler(log zerolog.Logger, svc courses.CourseManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-courses")
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

func queryCoursesByBootcampHandler(log zerolog.Logger, svc courses.CourseManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-courses-by-bootcamp")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		bootcampID := chi.URLParam(r, "bootcampID")
		if _, err = uuid.Parse(bootcampID); err != nil {
			err = fmt.Errorf("%w with id of %s", courses.ErrBootcampNotFound, bootcampID)
			writeError(w, r, err)
			return
		}

		result, err := svc.QueryByBootcamp(ctx, bootcampID, r.URL.Query())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, collectionResponse(result, selectedFields(r)))
	}
}

func getCourseHandler(log zerolog.Logger, svc courses.CourseManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-course")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		courseID := chi.URLParam(r, "courseID")
		if _, err = uuid.Parse(courseID); err != nil {
			err = courses.NotFound(courseID)
			writeError(w, r, err)
			return
		}

		c, err := svc.GetByID(ctx, courseID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, entityResponse(c))
	}
}

func createCourseHandler(log zerolog.Logger, bootcampSvc bootcamps.BootcampManagement, svc courses.CourseManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "create-course")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		bootcampID := chi.URLParam(r, "bootcampID")
		if _, err = uuid.Parse(bootcampID); err != nil {
			err = fmt.Errorf("%w with id of %s", courses.ErrBootcampNotFound, bootcampID)
			writeError(w, r, err)
			return
		}

		// adding a course requires ownership of the parent bootcamp
		if err = requireBootcampOwnership(ctx, bootcampSvc, bootcampID); err != nil {
			writeError(w, r, err)
			return
		}

		principal, _ := auth.GetPrincipal(ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			err = fmt.Errorf("%w: unable to read body", courses.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		var c types.Course
		err = json.Unmarshal(body, &c)
		if err != nil {
			err = fmt.Errorf("%w: unable to unmarshal body", courses.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		c.ID = ""
		c.BootcampID = bootcampID
		c.Owner = principal.ID

		course, err := svc.Create(ctx, c)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusCreated, entityResponse(course))
	}
}

func updateCourseHandler(log zerolog.Logger, svc courses.CourseManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "update-course")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		courseID := chi.URLParam(r, "courseID")
		if _, err = uuid.Parse(courseID); err != nil {
			err = courses.NotFound(courseID)
			writeError(w, r, err)
			return
		}

		if err = requireCourseOwnership(ctx, svc, courseID); err != nil {
			writeError(w, r, err)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			err = fmt.Errorf("%w: unable to read body", courses.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		var fields map[string]any
		err = json.Unmarshal(body, &fields)
		if err != nil {
			err = fmt.Errorf("%w: unable to unmarshal body into map", courses.ErrBadRequest)
			writeError(w, r, err)
			return
		}

		c, err := svc.Update(ctx, courseID, fields)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, entityResponse(c))
	}
}

func deleteCourseHandler(log zerolog.Logger, svc courses.CourseManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "delete-course")
		defer func() {
			if err != nil {
				span.RecordError(err)
			}
			span.End()
		}()
		ctx = log.WithContext(ctx)

		courseID := chi.URLParam(r, "courseID")
		if _, err = uuid.Parse(courseID); err != nil {
			err = courses.NotFound(courseID)
			writeError(w, r, err)
			return
		}

		if err = requireCourseOwnership(ctx, svc, courseID); err != nil {
			writeError(w, r, err)
			return
		}

		c, err := svc.Delete(ctx, courseID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeResponse(w, http.StatusOK, entityResponse(c))
	}
}

func requireCourseOwnership(ctx context.Context, svc courses.CourseManagement, courseID string) error {
	principal, ok := auth.GetPrincipal(ctx)
	if !ok {
		return errForbidden
	}

	c, err := svc.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	if !principal.Admin() && c.Owner != principal.ID {
		return errForbidden
	}

	return nil
}
