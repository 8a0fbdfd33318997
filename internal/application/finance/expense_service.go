package finance

import (
	"context"
	"strings"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpenseService handles the store's bills
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, logger: logger}
}

// Create registers an unpaid expense
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := finance.NewExpense(req.Description, req.Amount, req.Category, req.Supplier, req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// GetByID retrieves an expense
func (s *ExpenseService) GetByID(ctx context.Context, id int64) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// List lists expenses, unpaid first by due date
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "due_date"
	domainFilter.OrderDir = "asc"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	switch filter.Paid {
	case "true":
		domainFilter.Filters["paid"] = true
	case "false":
		domainFilter.Filters["paid"] = false
	case "":
	default:
		return nil, 0, shared.NewValidationError("paid must be true or false")
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		domainFilter.Filters["category"] = c
	}

	expenses, err := s.expenseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out, total, nil
}

// MarkPaid flags an expense as paid
func (s *ExpenseService) MarkPaid(ctx context.Context, id int64) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := expense.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.SaveWithLock(ctx, expense); err != nil {
		return nil, err
	}
	s.logger.Info("Expense paid",
		zap.Int64("expense_id", id),
		zap.String("amount", expense.Amount.String()))
	resp := ToExpenseResponse(expense)
	return &resp, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}
