package finance

import (
	"context"
	"testing"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExpenseService_Create(t *testing.T) {
	repo := new(MockExpenseRepository)
	svc := NewExpenseService(repo, zap.NewNop())
	repo.On("Create", mock.Anything, mock.AnythingOfType("*finance.Expense")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateExpenseRequest{
		Description: " Aluguel ",
		Amount:      valueobject.Cents(150000),
		Category:    "fixo",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(60), resp.ID)
	assert.Equal(t, "Aluguel", resp.Description)
	assert.False(t, resp.Paid)

	_, err = svc.Create(context.Background(), CreateExpenseRequest{Description: "Luz"})
	assert.True(t, shared.IsValidation(err))
}

func TestExpenseService_MarkPaidTwice(t *testing.T) {
	repo := new(MockExpenseRepository)
	svc := NewExpenseService(repo, zap.NewNop())
	expense, err := finance.NewExpense("Internet", valueobject.Cents(9990), "", "", nil)
	require.NoError(t, err)
	expense.ID = 61
	repo.On("FindByID", mock.Anything, int64(61)).Return(expense, nil)
	repo.On("SaveWithLock", mock.Anything, expense).Return(nil).Once()

	resp, err := svc.MarkPaid(context.Background(), 61)
	require.NoError(t, err)
	assert.True(t, resp.Paid)

	_, err = svc.MarkPaid(context.Background(), 61)
	assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))
	repo.AssertExpectations(t)
}

func TestExpenseService_ListFilters(t *testing.T) {
	repo := new(MockExpenseRepository)
	svc := NewExpenseService(repo, zap.NewNop())
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["paid"] == false && f.Filters["category"] == "fixo" && f.OrderBy == "due_date"
	})).Return([]finance.Expense{}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, total, err := svc.List(context.Background(), ExpenseListFilter{Paid: "false", Category: "fixo"})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, _, err = svc.List(context.Background(), ExpenseListFilter{Paid: "maybe"})
	assert.True(t, shared.IsValidation(err))
}

func TestExpenseService_DeleteMissing(t *testing.T) {
	repo := new(MockExpenseRepository)
	svc := NewExpenseService(repo, zap.NewNop())
	repo.On("FindByID", mock.Anything, int64(99)).Return(nil, shared.ErrNotFound)

	err := svc.Delete(context.Background(), 99)
	assert.True(t, shared.IsNotFound(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
