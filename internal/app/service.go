package app

import (
	"time"

	"github.com/google/uuid"

	"pinball-hwbind/internal/adapters"
	"pinball-hwbind/internal/ports"
)

type Service struct {
	Documents ports.DocumentPort
	// Catalogs returns a fresh platform catalog for every resolution pass
	// so that catalog layers never leak between reloads.
	Catalogs  func() ports.PlatformCatalogPort
	Bindings  ports.BindingReaderPort
	Sink      ports.DriverSinkPort
	Watcher   ports.FileWatcherPort
	Telemetry ports.TelemetryPort
	Clock     func() time.Time
	NewID     func() string
}

func NewService() Service {
	return Service{
		Documents: adapters.NewDocumentFileAdapter(),
		Catalogs: func() ports.PlatformCatalogPort {
			return adapters.NewPlatformCatalogAdapter()
		},
		Bindings:  adapters.NewBindingReaderAdapter(),
		Sink:      adapters.NewSerialSinkAdapter(),
		Watcher:   adapters.NewFileWatcherAdapter(),
		Telemetry: adapters.NoopTelemetry(),
		Clock:     time.Now,
		NewID:     func() string { return uuid.New().String() },
	}
}
