// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"fmt"
	"time"
)

// databaseValues is the mutable resolution form of [Database].
type databaseValues struct {
	ConnectionURL   Secret  `env:"CONNECTION_URL" override:"connection_url"`
	Echo            bool    `env:"ECHO" override:"echo"`
	Timeout         float64 `env:"TIMEOUT" override:"timeout" validate:"gte=0"`
	ServicesTimeout float64 `env:"SERVICES_TIMEOUT" override:"services_timeout" validate:"gte=0"`
}

// databaseDefaults derives the default connection URL from the shared
// context at construction time, so an ORION_HOME override set by a test
// harness after package load is still honored.
func databaseDefaults() (databaseValues, error) {
	shared, err := SharedContext()
	if err != nil {
		return databaseValues{}, err
	}

	return databaseValues{
		ConnectionURL: NewSecret(fmt.Sprintf("file:%s/orion.db", shared.Home())),
		Timeout:       1,
	}, nil
}

// Database holds the Orion database settings. The connection URL is a
// [Secret]: real deployments put credentials in it, so it never appears in
// logs or rendered settings trees.
type Database struct {
	connectionURL   Secret
	echo            bool
	timeout         float64
	servicesTimeout float64
}

// NewDatabase resolves the database group (prefix ORION_SERVER_DATABASE_).
func NewDatabase(overrides Overrides) (Database, error) {
	defaults, err := databaseDefaults()
	if err != nil {
		return Database{}, err
	}

	vals, err := resolveGroup(databasePrefix, defaults, overrides)
	if err != nil {
		return Database{}, err
	}

	return Database{
		connectionURL:   vals.ConnectionURL,
		echo:            vals.Echo,
		timeout:         vals.Timeout,
		servicesTimeout: vals.ServicesTimeout,
	}, nil
}

// ConnectionURL is the masked database connection URL; use Reveal for the
// raw DSN.
func (d Database) ConnectionURL() Secret { return d.connectionURL }

// Echo reports whether every statement should be logged.
func (d Database) Echo() bool { return d.echo }

// Timeout is the statement timeout in seconds; 0 disables it.
func (d Database) Timeout() float64 { return d.timeout }

// ServicesTimeout is the statement timeout for background services in
// seconds; 0 disables it.
func (d Database) ServicesTimeout() float64 { return d.servicesTimeout }

// dataValues is the mutable resolution form of [Data].
type dataValues struct {
	Name     string `env:"NAME" override:"name" validate:"required"`
	Scheme   string `env:"SCHEME" override:"scheme" validate:"oneof=file s3"`
	BasePath string `env:"BASE_PATH" override:"base_path" validate:"required"`
}

func dataDefaults() dataValues {
	return dataValues{Name: "default", Scheme: "file", BasePath: "/tmp"}
}

// Data holds the settings of the data-document storage location.
type Data struct {
	name     string
	scheme   string
	basePath string
}

// NewData resolves the data-location group (prefix ORION_SERVER_DATA_).
func NewData(overrides Overrides) (Data, error) {
	vals, err := resolveGroup(dataPrefix, dataDefaults(), overrides)
	if err != nil {
		return Data{}, err
	}

	return Data{name: vals.Name, scheme: vals.Scheme, basePath: vals.BasePath}, nil
}

func (d Data) Name() string     { return d.name }
func (d Data) Scheme() string   { return d.scheme }
func (d Data) BasePath() string { return d.basePath }

// apiValues is the mutable resolution form of [API].
type apiValues struct {
	DefaultLimit int    `env:"DEFAULT_LIMIT" override:"default_limit" validate:"gt=0"`
	Host         string `env:"HOST" override:"host" validate:"required"`
	Port         int    `env:"PORT" override:"port" validate:"gte=1,lte=65535"`
	LogLevel     string `env:"LOG_LEVEL" override:"log_level" validate:"oneof=trace debug info warn error fatal panic"`
}

func apiDefaults() apiValues {
	return apiValues{
		DefaultLimit: 200,
		Host:         "127.0.0.1",
		Port:         5000,
		LogLevel:     "info",
	}
}

// API holds the settings of the Orion HTTP API.
type API struct {
	defaultLimit int
	host         string
	port         int
	logLevel     string
}

// NewAPI resolves the API group (prefix ORION_SERVER_API_).
func NewAPI(overrides Overrides) (API, error) {
	vals, err := resolveGroup(apiPrefix, apiDefaults(), overrides)
	if err != nil {
		return API{}, err
	}

	return API{
		defaultLimit: vals.DefaultLimit,
		host:         vals.Host,
		port:         vals.Port,
		logLevel:     vals.LogLevel,
	}, nil
}

// DefaultLimit is the default page size for API queries.
func (a API) DefaultLimit() int { return a.defaultLimit }

// Host is the interface the API server binds to.
func (a API) Host() string { return a.host }

// Port is the TCP port the API server binds to.
func (a API) Port() int { return a.port }

// LogLevel is the access-log level of the API server.
func (a API) LogLevel() string { return a.logLevel }

// servicesValues is the mutable resolution form of [Services].
type servicesValues struct {
	RunInApp                     bool     `env:"RUN_IN_APP" override:"run_in_app"`
	SchedulerLoopSeconds         float64  `env:"SCHEDULER_LOOP_SECONDS" override:"scheduler_loop_seconds" validate:"gt=0"`
	SchedulerDeploymentBatchSize int      `env:"SCHEDULER_DEPLOYMENT_BATCH_SIZE" override:"scheduler_deployment_batch_size" validate:"gt=0"`
	SchedulerMaxRuns             int      `env:"SCHEDULER_MAX_RUNS" override:"scheduler_max_runs" validate:"gt=0"`
	SchedulerMaxScheduledTime    Duration `env:"SCHEDULER_MAX_SCHEDULED_TIME" override:"scheduler_max_scheduled_time"`
	AgentLoopSeconds             float64  `env:"AGENT_LOOP_SECONDS" override:"agent_loop_seconds" validate:"gt=0"`
	AgentPrefetchSeconds         int      `env:"AGENT_PREFETCH_SECONDS" override:"agent_prefetch_seconds" validate:"gt=0"`
}

func servicesDefaults() servicesValues {
	return servicesValues{
		SchedulerLoopSeconds:         60,
		SchedulerDeploymentBatchSize: 100,
		SchedulerMaxRuns:             100,
		SchedulerMaxScheduledTime:    Duration(100 * 24 * time.Hour),
		AgentLoopSeconds:             5,
		AgentPrefetchSeconds:         10,
	}
}

// Services holds the settings of the Orion background services (scheduler
// and agent loops).
type Services struct {
	runInApp                     bool
	schedulerLoopSeconds         float64
	schedulerDeploymentBatchSize int
	schedulerMaxRuns             int
	schedulerMaxScheduledTime    Duration
	agentLoopSeconds             float64
	agentPrefetchSeconds         int
}

// NewServices resolves the services group (prefix ORION_SERVER_SERVICES_).
func NewServices(overrides Overrides) (Services, error) {
	vals, err := resolveGroup(servicesPrefix, servicesDefaults(), overrides)
	if err != nil {
		return Services{}, err
	}

	return Services{
		runInApp:                     vals.RunInApp,
		schedulerLoopSeconds:         vals.SchedulerLoopSeconds,
		schedulerDeploymentBatchSize: vals.SchedulerDeploymentBatchSize,
		schedulerMaxRuns:             vals.SchedulerMaxRuns,
		schedulerMaxScheduledTime:    vals.SchedulerMaxScheduledTime,
		agentLoopSeconds:             vals.AgentLoopSeconds,
		agentPrefetchSeconds:         vals.AgentPrefetchSeconds,
	}, nil
}

// RunInApp reports whether background services run inside the API process.
func (s Services) RunInApp() bool { return s.runInApp }

// SchedulerLoopSeconds is the scheduler loop interval in seconds.
func (s Services) SchedulerLoopSeconds() float64 { return s.schedulerLoopSeconds }

// SchedulerDeploymentBatchSize is the number of deployments scheduled per batch.
func (s Services) SchedulerDeploymentBatchSize() int { return s.schedulerDeploymentBatchSize }

// SchedulerMaxRuns is the maximum number of new runs scheduled per deployment.
func (s Services) SchedulerMaxRuns() int { return s.schedulerMaxRuns }

// SchedulerMaxScheduledTime is how far into the future runs may be scheduled.
func (s Services) SchedulerMaxScheduledTime() time.Duration {
	return s.schedulerMaxScheduledTime.Std()
}

// AgentLoopSeconds is the agent poll interval in seconds.
func (s Services) AgentLoopSeconds() float64 { return s.agentLoopSeconds }

// AgentPrefetchSeconds is how far ahead, in seconds, the agent picks up runs
// scheduled to start.
func (s Services) AgentPrefetchSeconds() int { return s.agentPrefetchSeconds }

// Server aggregates the settings groups of the Orion server itself. It has
// no scalar fields of its own; each nested group resolves under its own
// prefix through a default factory invoked when the parent is constructed.
type Server struct {
	database Database
	data     Data
	api      API
	services Services
}

// NewServer resolves the server group and its nested groups in declaration
// order. Overrides may carry pre-built group instances or nested [Overrides]
// maps under the keys "database", "data", "api", and "services".
func NewServer(overrides Overrides) (Server, error) {
	ov := DropUnset(overrides)

	database, err := nestedGroup(ov, "database", NewDatabase)
	if err != nil {
		return Server{}, err
	}

	data, err := nestedGroup(ov, "data", NewData)
	if err != nil {
		return Server{}, err
	}

	api, err := nestedGroup(ov, "api", NewAPI)
	if err != nil {
		return Server{}, err
	}

	services, err := nestedGroup(ov, "services", NewServices)
	if err != nil {
		return Server{}, err
	}

	if len(ov) > 0 {
		return Server{}, &UnknownOverrideError{Prefix: serverPrefix, Keys: sortedKeys(ov)}
	}

	return Server{database: database, data: data, api: api, services: services}, nil
}

func (s Server) Database() Database { return s.database }
func (s Server) Data() Data         { return s.data }
func (s Server) API() API           { return s.api }
func (s Server) Services() Services { return s.services }
