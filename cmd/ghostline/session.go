package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/ghostline/recorder/internal/app"
	"github.com/ghostline/recorder/internal/config"
	"github.com/ghostline/recorder/internal/database"
	"github.com/ghostline/recorder/internal/influx"
	"github.com/ghostline/recorder/internal/logging"
	intotel "github.com/ghostline/recorder/internal/otel"
	"github.com/ghostline/recorder/internal/storage"
)

func configFileName() string {
	return config.FileName
}

// session is the process setup shared by the commands: config, log file,
// optional otel export and the zerolog writer for the database managers.
type session struct {
	start   time.Time
	logs    *logging.SlogManager
	log     *slog.Logger
	logFile *os.File
	otel    *intotel.Provider
	state   *app.LogState
}

func newSession(command string) (*session, error) {
	s := &session{
		start: time.Now(),
		logs:  logging.NewSlogManager(),
		state: &app.LogState{},
	}

	// log to stderr until the file is open
	s.logs.Setup(os.Stderr, "warn", nil)
	if err := config.Load(configDir); err != nil {
		s.logs.Logger().Warn("Failed to load config, using defaults", "error", err)
	}
	level := config.GetString("logLevel")
	if logLevel != "" {
		level = logLevel
	}

	f, err := logging.OpenLogFile(config.GetString("logsDir"), Name+"."+command, s.start)
	if err != nil {
		return nil, err
	}
	s.logFile = f

	var provider *sdklog.LoggerProvider
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		s.otel, err = intotel.New(intotel.Config{
			Enabled:      true,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    f,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			s.logs.Logger().Error("Failed to initialize OTel provider", "error", err)
		} else {
			provider = s.otel.LoggerProvider()
		}
	}

	s.logs.WithContext(s.state.Attrs)
	s.logs.Setup(f, level, provider)
	s.log = s.logs.Logger().With("command", command)
	s.log.Info("session started", "config", configDir, "logFile", f.Name())
	return s, nil
}

// componentLogger returns a zerolog logger writing to the session log file.
func (s *session) componentLogger(component string) zerolog.Logger {
	return zerolog.New(s.logFile).With().Timestamp().Str("component", component).Logger()
}

// backend opens and initializes the configured run history backend.
func (s *session) backend() (storage.Backend, error) {
	manager := database.NewManager(s.componentLogger("database"))
	b, err := storage.NewBackend(config.GetStorageConfig(), manager, config.GetDBConfig(), s.log)
	if err != nil {
		return nil, err
	}
	if err := b.Init(); err != nil {
		return nil, errors.Join(err, b.Close())
	}
	return b, nil
}

// influx connects the run metrics writer, or returns nil when disabled.
func (s *session) influx(ctx context.Context) *influx.Manager {
	cfg := config.GetInfluxConfig()
	if !cfg.Enabled {
		return nil
	}
	backup := filepath.Join(config.GetString("logsDir"), Name+"_influx_backup.lp.gz")
	m := influx.NewManager(s.componentLogger("influx"), cfg, backup)
	if err := m.Connect(ctx); err != nil {
		s.log.Warn("run metrics disabled", "error", err)
		return nil
	}
	return m
}

func (s *session) close(ctx context.Context) error {
	s.log.Info("session finished", "duration", time.Since(s.start))
	var errs []error
	if s.otel != nil {
		errs = append(errs, s.otel.Shutdown(ctx))
	}
	errs = append(errs, s.logs.Flush(ctx), s.logFile.Close())
	return errors.Join(errs...)
}
