package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/opencamp/bootcamp-mgmt/pkg/types"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("bootcamp-mgmt/geocoder")

var ErrNotFound = fmt.Errorf("no location found for postal code")

// Geocoder resolves a postal code to a geographic point.
//
//go:generate moq -rm -out geocode_mock.go . Geocoder
type Geocoder interface {
	Resolve(ctx context.Context, zipcode string) (types.Location, error)
}

type client struct {
	url        string
	httpClient http.Client
}

func NewClient(geocoderURL string) Geocoder {
	return &client{
		url: geocoderURL,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type result struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *client) Resolve(ctx context.Context, zipcode string) (types.Location, error) {
	var err error
	ctx, span := tracer.Start(ctx, "resolve-postal-code")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	lookupURL := c.url + "/search?format=json&postalcode=" + url.QueryEscape(zipcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return types.Location{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to resolve postal code: %w", err)
		return types.Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("geocoder request failed with status code %d", resp.StatusCode)
		return types.Location{}, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return types.Location{}, err
	}

	results := []result{}

	err = json.Unmarshal(respBody, &results)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return types.Location{}, err
	}

	if len(results) == 0 {
		err = ErrNotFound
		return types.Location{}, err
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return types.Location{}, fmt.Errorf("geocoder returned malformed latitude: %w", err)
	}

	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return types.Location{}, fmt.Errorf("geocoder returned malformed longitude: %w", err)
	}

	return types.Location{Latitude: lat, Longitude: lon}, nil
}
