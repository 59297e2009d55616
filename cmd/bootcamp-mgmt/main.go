package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/bootcamps"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/courses"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/events"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/geocode"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/logging"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/router"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/storage"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/infrastructure/tracing"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/presentation/api"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

const serviceName string = "bootcamp-mgmt"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort

	configurationFile

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode

	amqpURI
	geocoderURL
	tokenSecret
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",

		configurationFile: "/opt/opencamp/config/config.yaml",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "opencamp",
		dbSSLMode:  "disable",

		amqpURI:     "",
		geocoderURL: "https://nominatim.openstreetmap.org",
		tokenSecret: "",
	}
}

type appConfig struct {
	Bootcamps bootcamps.Config `yaml:"bootcamps"`
	API       api.Config       `yaml:"api"`
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := version()
	ctx, logger := logging.NewLogger(ctx, serviceName, serviceVersion)
	logger.Info().Msg("starting up ...")

	cleanup, err := tracing.Init(ctx, logger, serviceName, serviceVersion)
	exitIf(err, logger, "failed to init tracing")
	defer cleanup()

	cfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	cfg, err := parseConfigFile(cfgFile)
	exitIf(err, logger, "could not parse configuration file")

	mux, err := initialize(ctx, flags, cfg)
	exitIf(err, logger, "failed to initialize")

	apiAddress := fmt.Sprintf("%s:%s", flags[listenAddress], flags[servicePort])
	logger.Info().Msgf("serving requests on %s", apiAddress)

	err = http.ListenAndServe(apiAddress, mux)
	exitIf(err, logger, "failed to start request router")
}

func initialize(ctx context.Context, flags flagMap, cfg *appConfig) (http.Handler, error) {
	s, err := storage.New(ctx, storage.NewConfig(
		flags[dbHost], flags[dbUser], flags[dbPassword], flags[dbPort], flags[dbName], flags[dbSSLMode],
	))
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	err = s.Initialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not create database tables: %w", err)
	}

	publisher, err := events.New(ctx, flags[amqpURI])
	if err != nil {
		return nil, fmt.Errorf("could not connect to message broker: %w", err)
	}

	geocoder := geocode.NewClient(flags[geocoderURL])

	bootcampSvc := bootcamps.New(s, geocoder, publisher, &cfg.Bootcamps)
	courseSvc := courses.New(s, publisher)

	authn := api.NewAuthenticator([]byte(flags[tokenSecret]))

	return api.RegisterHandlers(ctx, router.New(serviceName), cfg.API, authn, bootcampSvc, courseSvc)
}

func parseConfigFile(cfgFile io.ReadCloser) (*appConfig, error) {
	defer cfgFile.Close()

	b, err := io.ReadAll(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := &appConfig{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.API.MaxFileUploadSize == 0 {
		cfg.API.MaxFileUploadSize = 1000000
	}

	if cfg.API.FileUploadPath == "" {
		cfg.API.FileUploadPath = "./public/uploads"
	}

	return cfg, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := func(name, def string) string {
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return def
	}

	flags[listenAddress] = envOrDef("LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef("SERVICE_PORT", flags[servicePort])

	flags[dbHost] = envOrDef("POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef("POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef("POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef("POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef("POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef("POSTGRES_SSLMODE", flags[dbSSLMode])

	flags[amqpURI] = envOrDef("AMQP_URI", flags[amqpURI])
	flags[geocoderURL] = envOrDef("GEOCODER_URL", flags[geocoderURL])
	flags[tokenSecret] = envOrDef("TOKEN_SECRET", flags[tokenSecret])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "service configuration file", apply(configurationFile))
	flag.Parse()

	return ctx, flags
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	buildSettings := buildInfo.Settings
	infoMap := map[string]string{}
	for _, s := range buildSettings {
		infoMap[s.Key] = s.Value
	}

	sha := infoMap["vcs.revision"]
	if infoMap["vcs.modified"] == "true" {
		sha += "+"
	}

	return sha
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Fatal().Err(err).Msg(msg)
	}
}
