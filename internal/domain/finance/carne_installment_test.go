package finance

import (
	"testing"
	"time"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchedule(t *testing.T) {
	due := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	t.Run("four equal installments monthly from the due date", func(t *testing.T) {
		c := newTestCreditor(t, 2000, due)
		schedule, err := BuildSchedule(c, 4)
		require.NoError(t, err)
		require.Len(t, schedule, 4)

		for i, inst := range schedule {
			assert.Equal(t, i+1, inst.InstallmentNumber)
			assert.Equal(t, valueobject.Cents(500), inst.Amount)
			assert.Equal(t, due.AddDate(0, i, 0), inst.DueDate)
			assert.False(t, inst.Paid)
			assert.Equal(t, int64(10), inst.CreditorID)
		}
	})

	t.Run("amounts sum to the remaining balance", func(t *testing.T) {
		c := newTestCreditor(t, 1000, due)
		require.NoError(t, c.RecordPayment(valueobject.Cents(1)))
		for n := 1; n <= 12; n++ {
			schedule, err := BuildSchedule(c, n)
			require.NoError(t, err)
			var sum valueobject.Money
			for _, inst := range schedule {
				sum = sum.Add(inst.Amount)
			}
			assert.Equal(t, c.RemainingAmount, sum, "count %d", n)
		}
	})

	t.Run("rejects zero count", func(t *testing.T) {
		_, err := BuildSchedule(newTestCreditor(t, 1000, due), 0)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects settled creditor", func(t *testing.T) {
		c := newTestCreditor(t, 1000, due)
		require.NoError(t, c.MarkPaid())
		_, err := BuildSchedule(c, 2)
		assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))
	})

	t.Run("rejects unsaved creditor", func(t *testing.T) {
		c := newTestCreditor(t, 1000, due)
		c.ID = 0
		_, err := BuildSchedule(c, 2)
		assert.Error(t, err)
	})
}

func TestCarneInstallment_MarkPaid(t *testing.T) {
	c := newTestCreditor(t, 2000, time.Now())
	schedule, err := BuildSchedule(c, 4)
	require.NoError(t, err)

	now := time.Now()
	inst := schedule[0]
	require.NoError(t, inst.MarkPaid(now))
	assert.True(t, inst.Paid)
	require.NotNil(t, inst.PaidAt)
	assert.Equal(t, now, *inst.PaidAt)
	assert.Equal(t, valueobject.Cents(2000), c.RemainingAmount, "creditor balance is untouched")

	assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(inst.MarkPaid(now)))
	assert.Error(t, inst.Reschedule(now.AddDate(0, 1, 0)))
}

func TestNextDueAndStats(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	installments := []CarneInstallment{
		{InstallmentNumber: 1, DueDate: base, Amount: 300, Paid: true},
		{InstallmentNumber: 3, DueDate: base.AddDate(0, 2, 0), Amount: 400},
		{InstallmentNumber: 2, DueDate: base.AddDate(0, 1, 0), Amount: 300},
	}

	next := NextDue(installments)
	require.NotNil(t, next)
	assert.Equal(t, 2, next.InstallmentNumber)

	stats := ComputeStats(installments)
	assert.Equal(t, 3, stats.TotalInstallments)
	assert.Equal(t, 1, stats.PaidInstallments)
	assert.Equal(t, valueobject.Cents(300), stats.PaidAmount)
	assert.Equal(t, valueobject.Cents(700), stats.RemainingAmount)

	SortByNumber(installments)
	assert.Equal(t, 1, installments[0].InstallmentNumber)
	assert.Equal(t, 3, installments[2].InstallmentNumber)
	assert.True(t, AnyPaid(installments))

	assert.Nil(t, NextDue([]CarneInstallment{{Paid: true}}))
}

func TestDeliveryVia(t *testing.T) {
	assert.Equal(t, []DeliveryVia{DeliveryViaCustomer, DeliveryViaCreditor}, DeliveryViaBoth.Copies())
	assert.Equal(t, []DeliveryVia{DeliveryViaCreditor}, DeliveryViaCreditor.Copies())
	assert.False(t, DeliveryVia("email").IsValid())
}
