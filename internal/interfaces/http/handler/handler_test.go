package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	financeapp "github.com/erp/pdv/internal/application/finance"
	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/interfaces/http/dto"
	"github.com/erp/pdv/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type mockExpenseRepository struct {
	mock.Mock
}

func (m *mockExpenseRepository) Create(ctx context.Context, e *finance.Expense) error {
	args := m.Called(ctx, e)
	if args.Error(0) == nil {
		e.ID = 11
	}
	return args.Error(0)
}

func (m *mockExpenseRepository) FindByID(ctx context.Context, id int64) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *mockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *mockExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockExpenseRepository) SaveWithLock(ctx context.Context, e *finance.Expense) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockExpenseRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func expenseEngine(repo *mockExpenseRepository) *gin.Engine {
	h := NewExpenseHandler(financeapp.NewExpenseService(repo, zap.NewNop()))
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/expenses", h.List)
	r.POST("/expenses", h.Create)
	r.POST("/expenses/:id/pay", h.MarkPaid)
	r.DELETE("/expenses/:id", h.Delete)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestExpenseHandler_Create(t *testing.T) {
	repo := new(mockExpenseRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*finance.Expense")).Return(nil)
	r := expenseEngine(repo)

	w := serve(r, http.MethodPost, "/expenses", `{"description":"Energia","amount":"189.90","category":"utilities"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	var got financeapp.ExpenseResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, int64(11), got.ID)
	assert.Equal(t, "189.90", got.Amount.String())
	assert.False(t, got.Paid)
}

func TestExpenseHandler_CreateValidation(t *testing.T) {
	repo := new(mockExpenseRepository)
	r := expenseEngine(repo)

	w := serve(r, http.MethodPost, "/expenses", `{"amount":"0"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.NotEmpty(t, env.Error.RequestID)
	fields := make([]string, 0, len(env.Error.Details))
	for _, d := range env.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"description", "amount"}, fields)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExpenseHandler_List(t *testing.T) {
	repo := new(mockExpenseRepository)
	e, err := finance.NewExpense("Aluguel", 150000, "rent", "", nil)
	require.NoError(t, err)
	e.ID = 3
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 5 && f.Filters["paid"] == false
	})).Return([]finance.Expense{*e}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(6), nil)
	r := expenseEngine(repo)

	w := serve(r, http.MethodGet, "/expenses?paid=false&page=2&page_size=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(6), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 5, env.Meta.PageSize)
	assert.Equal(t, 2, env.Meta.TotalPages)
}

func TestExpenseHandler_ErrorMapping(t *testing.T) {
	paid, err := finance.NewExpense("Internet", 9990, "", "", nil)
	require.NoError(t, err)
	paid.ID = 4
	paid.Paid = true

	tests := []struct {
		name   string
		setup  func(repo *mockExpenseRepository)
		method string
		path   string
		status int
		code   string
	}{
		{
			name:   "bad id",
			setup:  func(*mockExpenseRepository) {},
			method: http.MethodPost,
			path:   "/expenses/abc/pay",
			status: http.StatusBadRequest,
			code:   dto.ErrCodeBadRequest,
		},
		{
			name: "already paid",
			setup: func(repo *mockExpenseRepository) {
				repo.On("FindByID", mock.Anything, int64(4)).Return(paid, nil)
			},
			method: http.MethodPost,
			path:   "/expenses/4/pay",
			status: http.StatusUnprocessableEntity,
			code:   "INVALID_STATE",
		},
		{
			name: "missing",
			setup: func(repo *mockExpenseRepository) {
				repo.On("FindByID", mock.Anything, int64(9)).Return(nil, shared.ErrNotFound)
			},
			method: http.MethodDelete,
			path:   "/expenses/9",
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name: "store unavailable",
			setup: func(repo *mockExpenseRepository) {
				repo.On("FindByID", mock.Anything, int64(5)).
					Return(nil, shared.WrapDomainError(shared.CodeTransient, "Database unavailable", errors.New("dial tcp")))
			},
			method: http.MethodDelete,
			path:   "/expenses/5",
			status: http.StatusServiceUnavailable,
			code:   "TRANSIENT",
		},
		{
			name: "unexpected error",
			setup: func(repo *mockExpenseRepository) {
				repo.On("FindByID", mock.Anything, int64(6)).Return(nil, errors.New("boom"))
			},
			method: http.MethodDelete,
			path:   "/expenses/6",
			status: http.StatusInternalServerError,
			code:   dto.ErrCodeInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockExpenseRepository)
			tt.setup(repo)
			w := serve(expenseEngine(repo), tt.method, tt.path, "")

			assert.Equal(t, tt.status, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	r := gin.New()
	r.GET("/ok", NewHealthHandler(stubPinger{}, "1.0.0").Health)
	r.GET("/down", NewHealthHandler(stubPinger{err: errors.New("refused")}, "1.0.0").Health)

	w := serve(r, http.MethodGet, "/ok", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok","database":"ok","version":"1.0.0"}}`, w.Body.String())

	w = serve(r, http.MethodGet, "/down", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var data HealthData
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, "unreachable", data.Database)
}
