package service

import (
	"context"
	"time"

	"alpr_gateway/internal/config"
	"alpr_gateway/internal/logger"
	"alpr_gateway/internal/models"
	"alpr_gateway/internal/repository"
)

// History exposes the plate detection journal.
type History interface {
	Query(ctx context.Context, q HistoryQuery) (models.HistoryPage, error)
	Record(ctx context.Context, p RecordParams) (RecordResult, error)
	Dedupe(ctx context.Context, p DedupeParams) (int, error)
}

// People manages the registry of allowed cars.
type People interface {
	List(ctx context.Context, search string) ([]models.Person, error)
	Save(ctx context.Context, p models.Person) (models.Person, error)
	Delete(ctx context.Context, id int64) error
}

// Points manages access points and their cameras.
type Points interface {
	List(ctx context.Context, search string) ([]models.AccessPoint, error)
	Save(ctx context.Context, p models.AccessPoint) (models.AccessPoint, error)
	Delete(ctx context.Context, id int64) error
}

type Settings interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, patch []byte) (models.Settings, error)
}

// Status exposes the last upstream connectivity snapshot.
type Status interface {
	GetStatus(ctx context.Context) (models.GatewayStatus, error)
}

// StatusMonitor runs the background probe loop.
// Stop via context cancellation in main() for graceful shutdown.
type StatusMonitor interface {
	Run(ctx context.Context, tick time.Duration)
}

type Logs interface {
	Lines(showDebug bool) []string
}

// Service aggregates all sub-services.
type Service struct {
	History  History
	People   People
	Points   Points
	Settings Settings
	Status   Status
	Monitor  StatusMonitor
	Logs     Logs

	Maintenance *Maintenance
}

// NewService wires the repository layer and the settings store into concrete
// services.
func NewService(repos *repository.Repository, store *config.SettingsStore, log *logger.Logger, cfg *config.Config) (*Service, error) {
	history := NewHistoryService(repos.HistoryRepo, repos.PeopleRepo, log, cfg.History.MaxLimit, cfg.History.RepeatInterval)
	settings := NewSettingsService(store, log)
	status := NewStatusService(settings, log, cfg.Status.Timeout)

	maintenance, err := NewMaintenance(history, log, cfg.History)
	if err != nil {
		return nil, err
	}

	return &Service{
		History:     history,
		People:      NewPeopleService(repos.PeopleRepo),
		Points:      NewPointService(repos.PointRepo, settings),
		Settings:    settings,
		Status:      status,
		Monitor:     status,
		Logs:        NewLogService(log.Buffer()),
		Maintenance: maintenance,
	}, nil
}
