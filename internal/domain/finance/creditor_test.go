package finance

import (
	"testing"
	"time"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCreditor(t *testing.T, debt int64, due time.Time) *Creditor {
	t.Helper()
	c, err := NewCreditor(NewCreditorInput{
		CustomerID:   1,
		CustomerName: "Maria",
		TotalDebt:    valueobject.Cents(debt),
		DueDate:      due,
	})
	require.NoError(t, err)
	c.ID = 10
	return c
}

func assertBalanced(t *testing.T, c *Creditor) {
	t.Helper()
	assert.Equal(t, c.TotalDebt.Sub(c.PaidAmount), c.RemainingAmount)
	assert.Equal(t, c.RemainingAmount.IsZero(), c.IsPaid())
}

func TestNewCreditorForSale(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c, err := NewCreditorForSale(SaleCredit{
		SaleID:           12,
		Total:            valueobject.Cents(2000),
		Installments:     4,
		InstallmentValue: valueobject.Cents(500),
	}, 7, "Maria", now)
	require.NoError(t, err)

	assert.Equal(t, valueobject.Cents(2000), c.TotalDebt)
	assert.Equal(t, valueobject.Cents(2000), c.RemainingAmount)
	assert.Equal(t, valueobject.Cents(0), c.PaidAmount)
	assert.Equal(t, CreditorStatusPending, c.Status)
	assert.Equal(t, now.Add(30*24*time.Hour), c.DueDate)
	assert.Equal(t, "Sale #12 - 4x 5.00", c.Description)
	require.NotNil(t, c.SaleID)
	assert.Equal(t, int64(12), *c.SaleID)
	assertBalanced(t, c)
}

func TestNewCreditor_Validation(t *testing.T) {
	due := time.Now().Add(time.Hour)

	_, err := NewCreditor(NewCreditorInput{TotalDebt: 100, DueDate: due})
	assert.True(t, shared.IsValidation(err))

	_, err = NewCreditor(NewCreditorInput{CustomerID: 1, TotalDebt: 0, DueDate: due})
	assert.True(t, shared.IsValidation(err))

	_, err = NewCreditor(NewCreditorInput{CustomerID: 1, TotalDebt: 100})
	assert.True(t, shared.IsValidation(err))

	c, err := NewCreditor(NewCreditorInput{CustomerID: 1, TotalDebt: 100, DueDate: due})
	require.NoError(t, err)
	assert.Equal(t, DefaultCreditorDescription, c.Description)
}

func TestCreditor_EffectiveStatus(t *testing.T) {
	now := time.Now()

	t.Run("pending past due reads as overdue", func(t *testing.T) {
		c := newTestCreditor(t, 1000, now.Add(-time.Hour))
		assert.Equal(t, CreditorStatusOverdue, c.EffectiveStatus(now))
		assert.Equal(t, CreditorStatusPending, c.Status, "projection does not mutate")
		c.ProjectStatus(now)
		assert.Equal(t, CreditorStatusOverdue, c.Status)
	})

	t.Run("pending before due stays pending", func(t *testing.T) {
		c := newTestCreditor(t, 1000, now.Add(time.Hour))
		assert.Equal(t, CreditorStatusPending, c.EffectiveStatus(now))
	})

	t.Run("paid is never overdue", func(t *testing.T) {
		c := newTestCreditor(t, 1000, now.Add(-time.Hour))
		require.NoError(t, c.MarkPaid())
		assert.Equal(t, CreditorStatusPaid, c.EffectiveStatus(now))
	})

	t.Run("stale overdue flips back when due date moved", func(t *testing.T) {
		c := newTestCreditor(t, 1000, now.Add(time.Hour))
		c.Status = CreditorStatusOverdue
		assert.Equal(t, CreditorStatusPending, c.EffectiveStatus(now))
	})
}

func TestCreditor_MarkPaid(t *testing.T) {
	c := newTestCreditor(t, 1000, time.Now())
	require.NoError(t, c.RecordPayment(valueobject.Cents(300)))

	require.NoError(t, c.MarkPaid())
	assert.Equal(t, CreditorStatusPaid, c.Status)
	assert.Equal(t, valueobject.Cents(1000), c.PaidAmount)
	assert.Equal(t, valueobject.Cents(0), c.RemainingAmount)
	assertBalanced(t, c)

	assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(c.MarkPaid()))
}

func TestCreditor_RecordPayment(t *testing.T) {
	c := newTestCreditor(t, 1000, time.Now())
	c.ClearDomainEvents()

	require.NoError(t, c.RecordPayment(valueobject.Cents(400)))
	assert.Equal(t, valueobject.Cents(600), c.RemainingAmount)
	assert.Equal(t, CreditorStatusPending, c.Status)
	assertBalanced(t, c)

	assert.True(t, shared.IsValidation(c.RecordPayment(valueobject.Cents(601))))
	assert.True(t, shared.IsValidation(c.RecordPayment(valueobject.Cents(0))))

	require.NoError(t, c.RecordPayment(valueobject.Cents(600)))
	assert.True(t, c.IsPaid())
	assertBalanced(t, c)
	assert.Len(t, c.GetDomainEvents(), 3)
}

func TestCreditor_UpdateDetails(t *testing.T) {
	c := newTestCreditor(t, 1000, time.Now())
	require.NoError(t, c.RecordPayment(valueobject.Cents(300)))

	newDue := time.Now().AddDate(0, 1, 0)
	require.NoError(t, c.UpdateDetails(valueobject.Cents(1500), newDue, ""))
	assert.Equal(t, valueobject.Cents(300), c.PaidAmount)
	assert.Equal(t, valueobject.Cents(1200), c.RemainingAmount)
	assert.Equal(t, DefaultCreditorDescription, c.Description)
	assertBalanced(t, c)

	assert.True(t, shared.IsValidation(c.UpdateDetails(valueobject.Cents(200), newDue, "x")))

	require.NoError(t, c.UpdateDetails(valueobject.Cents(300), newDue, "x"))
	assert.True(t, c.IsPaid())
	assertBalanced(t, c)
}

func TestParseCreditorStatus(t *testing.T) {
	s, err := ParseCreditorStatus("atrasado")
	require.NoError(t, err)
	assert.Equal(t, CreditorStatusOverdue, s)

	_, err = ParseCreditorStatus("quitado")
	assert.Error(t, err)
}
