package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/matryer/is"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/bootcamps"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/courses"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/events"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/geocode"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/router"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opencamp/bootcamp-mgmt/pkg/types"
	"github.com/rs/zerolog"
)

const testSecret = "s3cr3t-f0r-t3st1ng"

const knownID = "ca2d49f5-66e5-4eb3-b1ac-0f5b2b5f6a63"
const missingID = "8a3f1d39-21d6-4a09-9f2c-8d0a44bb1702"

type testMocks struct {
	bootcampStorage *bootcamps.BootcampStorageMock
	courseStorage   *courses.CourseStorageMock
	geocoder        *geocode.GeocoderMock
	publisher       *events.PublisherMock
}

func defaultMocks() testMocks {
	known := types.Bootcamp{
		ID:    knownID,
		Name:  "Devworks Bootcamp",
		Owner: "user-1",
		Location: types.Location{
			Latitude:  42.3601,
			Longitude: -71.0589,
		},
	}

	m := testMocks{
		bootcampStorage: &bootcamps.BootcampStorageMock{
			GetBootcampFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Bootcamp, error) {
				condition := &storage.Condition{}
				for _, f := range conditions {
					f(condition)
				}
				if condition.ID == knownID {
					return known, nil
				}
				return types.Bootcamp{}, storage.ErrNoRows
			},
			QueryBootcampsFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Bootcamp], error) {
				return types.Collection[types.Bootcamp]{
					Data:       []types.Bootcamp{known},
					Count:      1,
					Offset:     0,
					Limit:      10,
					TotalCount: 1,
				}, nil
			},
			AddBootcampFunc: func(ctx context.Context, b types.Bootcamp) error {
				return nil
			},
			UpdateBootcampFunc: func(ctx context.Context, b types.Bootcamp) error {
				return nil
			},
			DeleteBootcampFunc: func(ctx context.Context, bootcampID string) error {
				return nil
			},
			SetPhotoFunc: func(ctx context.Context, bootcampID, filename string) error {
				return nil
			},
			CoursesForBootcampsFunc: func(ctx context.Context, bootcampIDs []string) (map[string][]types.Course, error) {
				return map[string][]types.Course{}, nil
			},
		},
		courseStorage: &courses.CourseStorageMock{
			GetBootcampFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Bootcamp, error) {
				return known, nil
			},
			GetCourseFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Course, error) {
				return types.Course{ID: "course-1", Title: "IOS Development", BootcampID: knownID, Owner: "user-1"}, nil
			},
			QueryCoursesFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Course], error) {
				return types.Collection[types.Course]{}, nil
			},
			AddCourseFunc: func(ctx context.Context, c types.Course) error {
				return nil
			},
			UpdateCourseFunc: func(ctx context.Context, c types.Course) error {
				return nil
			},
			DeleteCourseFunc: func(ctx context.Context, courseID string) error {
				return nil
			},
			UpdateAverageCostFunc: func(ctx context.Context, bootcampID string) error {
				return nil
			},
		},
		geocoder: &geocode.GeocoderMock{
			ResolveFunc: func(ctx context.Context, zipcode string) (types.Location, error) {
				return types.Location{Latitude: 42.3601, Longitude: -71.0589}, nil
			},
		},
		publisher: &events.PublisherMock{
			PublishFunc: func(ctx context.Context, routingKey string, body any) error {
				return nil
			},
		},
	}

	return m
}

func setupTest(t *testing.T, m testMocks) (*chi.Mux, *is.I) {
	is := is.New(t)

	bootcampSvc := bootcamps.New(m.bootcampStorage, m.geocoder, m.publisher, &bootcamps.Config{})
	courseSvc := courses.New(m.courseStorage, m.publisher)

	r := router.New("test")
	mux, err := RegisterHandlers(zerolog.New(io.Discard).WithContext(context.Background()), r, Config{
		MaxFileUploadSize: 1024,
		FileUploadPath:    t.TempDir(),
	}, NewAuthenticator([]byte(testSecret)), bootcampSvc, courseSvc)
	is.NoErr(err)

	return mux, is
}

func bearerToken(is *is.I, subject, role string) string {
	_, tokenString, err := jwtauth.New("HS256", []byte(testSecret), nil).Encode(map[string]any{
		"sub":  subject,
		"role": role,
	})
	is.NoErr(err)
	return "Bearer " + tokenString
}

func testRequest(is *is.I, mux *chi.Mux, method, path, token string, body io.Reader) (*http.Response, string) {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Add("Authorization", token)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	respBody, _ := io.ReadAll(w.Result().Body)
	return w.Result(), string(respBody)
}

func TestHealthEndpoint(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, _ := testRequest(is, mux, http.MethodGet, "/health", "", nil)

	is.Equal(resp.StatusCode, http.StatusNoContent)
}

func TestGetBootcampsReturnsEnvelope(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, body := testRequest(is, mux, http.MethodGet, "/api/v1/bootcamps", "", nil)

	is.Equal(resp.StatusCode, http.StatusOK)

	var envelope struct {
		Success bool             `json:"success"`
		Count   int              `json:"count"`
		Data    []types.Bootcamp `json:"data"`
	}
	is.NoErr(json.Unmarshal([]byte(body), &envelope))

	is.True(envelope.Success)
	is.Equal(envelope.Count, 1)
	is.Equal(envelope.Data[0].Name, "Devworks Bootcamp")
}

func TestGetBootcampsRejectsUnknownFilter(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, body := testRequest(is, mux, http.MethodGet, "/api/v1/bootcamps?colour=blue", "", nil)

	is.Equal(resp.StatusCode, http.StatusBadRequest)
	is.True(strings.Contains(body, `"success":false`))
}

func TestGetBootcampsWithSelectProjectsFields(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	_, body := testRequest(is, mux, http.MethodGet, "/api/v1/bootcamps?select=name", "", nil)

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	is.NoErr(json.Unmarshal([]byte(body), &envelope))

	is.Equal(len(envelope.Data), 1)
	is.Equal(envelope.Data[0]["name"], "Devworks Bootcamp")
	is.Equal(envelope.Data[0]["id"], knownID)

	_, present := envelope.Data[0]["owner"]
	is.True(!present)
}

func TestGetUnknownBootcampReturns404(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, body := testRequest(is, mux, http.MethodGet, "/api/v1/bootcamps/"+missingID, "", nil)

	is.Equal(resp.StatusCode, http.StatusNotFound)
	is.True(strings.Contains(body, "Bootcamp not found with id of "+missingID))
}

func TestGetBootcampWithMalformedIDReturns404(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, body := testRequest(is, mux, http.MethodGet, "/api/v1/bootcamps/not-a-uuid", "", nil)

	is.Equal(resp.StatusCode, http.StatusNotFound)
	is.True(strings.Contains(body, "Bootcamp not found with id of not-a-uuid"))
}

func TestCreateBootcampRequiresToken(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, body := testRequest(is, mux, http.MethodPost, "/api/v1/bootcamps", "",
		bytes.NewBufferString(`{"name":"ModernTech"}`))

	is.Equal(resp.StatusCode, http.StatusUnauthorized)
	is.True(strings.Contains(body, "not authorized to access this route"))
}

func TestCreateBootcampRejectsUnknownRole(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, _ := testRequest(is, mux, http.MethodPost, "/api/v1/bootcamps", bearerToken(is, "user-9", "user"),
		bytes.NewBufferString(`{"name":"ModernTech"}`))

	is.Equal(resp.StatusCode, http.StatusForbidden)
}

func TestCreateBootcamp(t *testing.T) {
	m := defaultMocks()
	m.bootcampStorage.QueryBootcampsFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Bootcamp], error) {
		return types.Collection[types.Bootcamp]{}, nil
	}
	m.bootcampStorage.GetBootcampFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Bootcamp, error) {
		return types.Bootcamp{ID: knownID, Name: "ModernTech", Owner: "user-9"}, nil
	}
	mux, is := setupTest(t, m)

	resp, body := testRequest(is, mux, http.MethodPost, "/api/v1/bootcamps", bearerToken(is, "user-9", "publisher"),
		bytes.NewBufferString(`{"name":"ModernTech"}`))

	is.Equal(resp.StatusCode, http.StatusCreated)
	is.True(strings.Contains(body, `"name":"ModernTech"`))

	is.Equal(len(m.bootcampStorage.AddBootcampCalls()), 1)
	is.Equal(m.bootcampStorage.AddBootcampCalls()[0].B.Owner, "user-9")
	is.Equal(len(m.publisher.PublishCalls()), 1)
	is.Equal(m.publisher.PublishCalls()[0].RoutingKey, events.BootcampCreated)
}

func TestCreateSecondBootcampForSameOwnerIsRejected(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	// the default query mock reports an existing bootcamp for any owner
	resp, body := testRequest(is, mux, http.MethodPost, "/api/v1/bootcamps", bearerToken(is, "user-1", "publisher"),
		bytes.NewBufferString(`{"name":"Second Bootcamp"}`))

	is.Equal(resp.StatusCode, http.StatusBadRequest)
	is.True(strings.Contains(body, "already published a bootcamp"))
}

func TestAdminMayCreateSeveralBootcamps(t *testing.T) {
	m := defaultMocks()
	m.bootcampStorage.GetBootcampFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Bootcamp, error) {
		return types.Bootcamp{ID: knownID, Name: "Another Bootcamp", Owner: "admin-1"}, nil
	}
	mux, is := setupTest(t, m)

	resp, _ := testRequest(is, mux, http.MethodPost, "/api/v1/bootcamps", bearerToken(is, "admin-1", "admin"),
		bytes.NewBufferString(`{"name":"Another Bootcamp"}`))

	is.Equal(resp.StatusCode, http.StatusCreated)
	is.Equal(len(m.bootcampStorage.QueryBootcampsCalls()), 0)
}

func TestUpdateBootcampByNonOwnerIsForbidden(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, _ := testRequest(is, mux, http.MethodPut, "/api/v1/bootcamps/"+knownID, bearerToken(is, "someone-else", "publisher"),
		bytes.NewBufferString(`{"name":"Hijacked"}`))

	is.Equal(resp.StatusCode, http.StatusForbidden)
}

func TestUpdateBootcampByOwner(t *testing.T) {
	m := defaultMocks()
	mux, is := setupTest(t, m)

	resp, _ := testRequest(is, mux, http.MethodPut, "/api/v1/bootcamps/"+knownID, bearerToken(is, "user-1", "publisher"),
		bytes.NewBufferString(`{"description":"now with more javascript"}`))

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(len(m.bootcampStorage.UpdateBootcampCalls()), 1)
	is.Equal(m.bootcampStorage.UpdateBootcampCalls()[0].B.Description, "now with more javascript")
}

func TestUpdateBootcampRejectsUnknownField(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, _ := testRequest(is, mux, http.MethodPut, "/api/v1/bootcamps/"+knownID, bearerToken(is, "user-1", "publisher"),
		bytes.NewBufferString(`{"rating":11}`))

	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestDeleteMissingBootcampReturns404(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, body := testRequest(is, mux, http.MethodDelete, "/api/v1/bootcamps/"+missingID, bearerToken(is, "admin-1", "admin"), nil)

	is.Equal(resp.StatusCode, http.StatusNotFound)
	is.True(strings.Contains(body, "Bootcamp not found with id of "+missingID))
}

func TestDeleteBootcampReturnsTheDeletedEntity(t *testing.T) {
	m := defaultMocks()
	mux, is := setupTest(t, m)

	resp, body := testRequest(is, mux, http.MethodDelete, "/api/v1/bootcamps/"+knownID, bearerToken(is, "user-1", "publisher"), nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"name":"Devworks Bootcamp"`))
	is.Equal(len(m.publisher.PublishCalls()), 1)
	is.Equal(m.publisher.PublishCalls()[0].RoutingKey, events.BootcampDeleted)
}

func TestBootcampsInRadius(t *testing.T) {
	m := defaultMocks()
	mux, is := setupTest(t, m)

	resp, _ := testRequest(is, mux, http.MethodGet, "/api/v1/bootcamps/radius/02118/50", "", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(len(m.geocoder.ResolveCalls()), 1)
	is.Equal(m.geocoder.ResolveCalls()[0].Zipcode, "02118")
}

func TestBootcampsInRadiusWithUnknownZipcodeIs400(t *testing.T) {
	m := defaultMocks()
	m.geocoder.ResolveFunc = func(ctx context.Context, zipcode string) (types.Location, error) {
		return types.Location{}, geocode.ErrNotFound
	}
	mux, is := setupTest(t, m)

	resp, body := testRequest(is, mux, http.MethodGet, "/api/v1/bootcamps/radius/00000/50", "", nil)

	is.Equal(resp.StatusCode, http.StatusBadRequest)
	is.True(strings.Contains(body, "unknown postal code"))
}

func TestBootcampsInRadiusWithBadDistanceIs400(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, _ := testRequest(is, mux, http.MethodGet, "/api/v1/bootcamps/radius/02118/far", "", nil)

	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func uploadRequest(is *is.I, contentType, filename string, size int) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	part := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	w, err := part.CreatePart(header)
	is.NoErr(err)

	_, err = w.Write(bytes.Repeat([]byte("x"), size))
	is.NoErr(err)

	part.Close()

	return body, part.FormDataContentType()
}

func TestUploadPhoto(t *testing.T) {
	m := defaultMocks()

	bootcampSvc := bootcamps.New(m.bootcampStorage, m.geocoder, m.publisher, &bootcamps.Config{})
	courseSvc := courses.New(m.courseStorage, m.publisher)

	uploadPath := t.TempDir()

	mux, err := RegisterHandlers(context.Background(), router.New("test"), Config{
		MaxFileUploadSize: 1024,
		FileUploadPath:    uploadPath,
	}, NewAuthenticator([]byte(testSecret)), bootcampSvc, courseSvc)

	is := is.New(t)
	is.NoErr(err)

	body, contentType := uploadRequest(is, "image/jpeg", "photo.jpg", 512)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/bootcamps/"+knownID+"/photo", body)
	req.Header.Add("Authorization", bearerToken(is, "user-1", "publisher"))
	req.Header.Add("Content-Type", contentType)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	is.Equal(w.Result().StatusCode, http.StatusOK)

	_, err = os.Stat(uploadPath + "/" + knownID + ".jpg")
	is.NoErr(err)

	is.Equal(len(m.bootcampStorage.SetPhotoCalls()), 1)
	is.Equal(m.bootcampStorage.SetPhotoCalls()[0].Filename, knownID+".jpg")
}

func TestUploadPhotoRejectsNonImages(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	body, contentType := uploadRequest(is, "application/pdf", "photo.pdf", 512)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/bootcamps/"+knownID+"/photo", body)
	req.Header.Add("Authorization", bearerToken(is, "user-1", "publisher"))
	req.Header.Add("Content-Type", contentType)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	respBody, _ := io.ReadAll(w.Result().Body)

	is.Equal(w.Result().StatusCode, http.StatusBadRequest)
	is.True(strings.Contains(string(respBody), "please upload an image file"))
}

func TestUploadPhotoRejectsOversizedFiles(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	body, contentType := uploadRequest(is, "image/png", "huge.png", 4096)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/bootcamps/"+knownID+"/photo", body)
	req.Header.Add("Authorization", bearerToken(is, "user-1", "publisher"))
	req.Header.Add("Content-Type", contentType)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	is.Equal(w.Result().StatusCode, http.StatusBadRequest)
}

func TestCreateCourseUnderMissingBootcampIs404(t *testing.T) {
	m := defaultMocks()
	m.courseStorage.GetBootcampFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Bootcamp, error) {
		return types.Bootcamp{}, storage.ErrNoRows
	}
	m.bootcampStorage.GetBootcampFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Bootcamp, error) {
		return types.Bootcamp{}, storage.ErrNoRows
	}
	mux, is := setupTest(t, m)

	resp, body := testRequest(is, mux, http.MethodPost, "/api/v1/bootcamps/"+missingID+"/courses", bearerToken(is, "user-1", "publisher"),
		bytes.NewBufferString(`{"title":"IOS Development","tuition":6000}`))

	is.Equal(resp.StatusCode, http.StatusNotFound)
	is.True(strings.Contains(body, "Bootcamp not found with id of "+missingID))
}

func TestCreateCourseMaintainsAverageCost(t *testing.T) {
	m := defaultMocks()
	mux, is := setupTest(t, m)

	resp, _ := testRequest(is, mux, http.MethodPost, "/api/v1/bootcamps/"+knownID+"/courses", bearerToken(is, "user-1", "publisher"),
		bytes.NewBufferString(`{"title":"IOS Development","tuition":6000}`))

	is.Equal(resp.StatusCode, http.StatusCreated)
	is.Equal(len(m.courseStorage.AddCourseCalls()), 1)
	is.Equal(m.courseStorage.AddCourseCalls()[0].C.BootcampID, knownID)
	is.Equal(len(m.courseStorage.UpdateAverageCostCalls()), 1)
}

func TestDeleteCourseByNonOwnerIsForbidden(t *testing.T) {
	mux, is := setupTest(t, defaultMocks())

	resp, _ := testRequest(is, mux, http.MethodDelete, "/api/v1/courses/"+knownID, bearerToken(is, "someone-else", "publisher"), nil)

	is.Equal(resp.StatusCode, http.StatusForbidden)
}
