package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"orangepass/internal/config"
	"orangepass/internal/handlers"
	"orangepass/internal/middleware"
	"orangepass/internal/model"
	"orangepass/internal/repo"
	"orangepass/internal/service"
)

const testSecret = "test-secret"

// --- Mocks ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockRecordRepo struct{ mock.Mock }

func (m *mockRecordRepo) List(ctx context.Context, where string, args []any, orderBy string) ([]model.Record, error) {
	a := m.Called(ctx, where, args, orderBy)
	if v, ok := a.Get(0).([]model.Record); ok {
		return v, a.Error(1)
	}
	return nil, a.Error(1)
}
func (m *mockRecordRepo) GetByID(ctx context.Context, id string) (*model.Record, error) {
	a := m.Called(ctx, id)
	if v, ok := a.Get(0).(*model.Record); ok {
		return v, a.Error(1)
	}
	return nil, a.Error(1)
}
func (m *mockRecordRepo) Create(ctx context.Context, rec *model.Record) error {
	return m.Called(ctx, rec).Error(0)
}
func (m *mockRecordRepo) Update(ctx context.Context, userID, id string, updates map[string]any) (int64, error) {
	a := m.Called(ctx, userID, id, updates)
	return a.Get(0).(int64), a.Error(1)
}
func (m *mockRecordRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	a := m.Called(ctx, userID, id)
	return a.Get(0).(int64), a.Error(1)
}
func (m *mockRecordRepo) UpdatedMap(ctx context.Context, userID string, ids []string) (map[string]time.Time, error) {
	a := m.Called(ctx, userID, ids)
	if v, ok := a.Get(0).(map[string]time.Time); ok {
		return v, a.Error(1)
	}
	return nil, a.Error(1)
}

var _ repo.RecordRepository = (*mockRecordRepo)(nil)

// --- Helpers ---

func newTestRouter(t *testing.T, ur repo.UserRepository, rr repo.RecordRepository) http.Handler {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret}
	logger := zap.NewNop().Sugar()

	if ur == nil {
		ur = &mockUserRepo{}
	}
	if rr == nil {
		rr = &mockRecordRepo{}
	}
	userSvc := service.NewUserService(ur)
	recordSvc := service.NewRecordService(rr, logger)

	h := handlers.NewHandler(userSvc, recordSvc, logger, cfg)
	return h.Router
}

func addAuthCookie(t *testing.T, req *http.Request, userID string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, testSecret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}
