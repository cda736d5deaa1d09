package handlers

import (
	"context"

	"alpr_gateway/internal/models"
	"alpr_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockHistory struct {
	page      models.HistoryPage
	queryErr  error
	lastQuery service.HistoryQuery

	record     service.RecordResult
	recordErr  error
	lastRecord service.RecordParams

	removed    int
	dedupeErr  error
	lastDedupe service.DedupeParams
}

func (m *mockHistory) Query(ctx context.Context, q service.HistoryQuery) (models.HistoryPage, error) {
	m.lastQuery = q
	return m.page, m.queryErr
}
func (m *mockHistory) Record(ctx context.Context, p service.RecordParams) (service.RecordResult, error) {
	m.lastRecord = p
	return m.record, m.recordErr
}
func (m *mockHistory) Dedupe(ctx context.Context, p service.DedupeParams) (int, error) {
	m.lastDedupe = p
	return m.removed, m.dedupeErr
}

type mockPeople struct {
	people     []models.Person
	listErr    error
	lastSearch string
	saveErr    error
	deleteErr  error
	lastDelete int64
}

func (m *mockPeople) List(ctx context.Context, search string) ([]models.Person, error) {
	m.lastSearch = search
	return m.people, m.listErr
}
func (m *mockPeople) Save(ctx context.Context, p models.Person) (models.Person, error) {
	if m.saveErr != nil {
		return models.Person{}, m.saveErr
	}
	p.ID = 1
	return p, nil
}
func (m *mockPeople) Delete(ctx context.Context, id int64) error {
	m.lastDelete = id
	return m.deleteErr
}

type mockPoints struct {
	points    []models.AccessPoint
	saveErr   error
	deleteErr error
}

func (m *mockPoints) List(ctx context.Context, search string) ([]models.AccessPoint, error) {
	return m.points, nil
}
func (m *mockPoints) Save(ctx context.Context, p models.AccessPoint) (models.AccessPoint, error) {
	if m.saveErr != nil {
		return models.AccessPoint{}, m.saveErr
	}
	p.ID = 2
	return p, nil
}
func (m *mockPoints) Delete(ctx context.Context, id int64) error { return m.deleteErr }

type mockSettings struct {
	st        models.Settings
	err       error
	lastPatch string
}

func (m *mockSettings) Get(ctx context.Context) (models.Settings, error) { return m.st, m.err }
func (m *mockSettings) Update(ctx context.Context, patch []byte) (models.Settings, error) {
	m.lastPatch = string(patch)
	return m.st, m.err
}

type mockStatus struct {
	status models.GatewayStatus
	err    error
}

func (m *mockStatus) GetStatus(ctx context.Context) (models.GatewayStatus, error) {
	return m.status, m.err
}

type mockLogs struct {
	lines     []string
	lastDebug bool
}

func (m *mockLogs) Lines(showDebug bool) []string {
	m.lastDebug = showDebug
	return m.lines
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
