package trade

import (
	"testing"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persistedSale(t *testing.T) *Sale {
	t.Helper()
	sale, err := NewSale(cartOf(
		SaleItem{ProductID: 1, ProductName: "P1", Quantity: 2, UnitPrice: valueobject.Cents(1000)},
		SaleItem{ProductID: 2, ProductName: "P2", Quantity: 1, UnitPrice: valueobject.Cents(450)},
	))
	require.NoError(t, err)
	sale.ID = 42
	return sale
}

func TestNewReturn(t *testing.T) {
	t.Run("refund uses the sale price snapshot", func(t *testing.T) {
		r, err := NewReturn(persistedSale(t), []ReturnLine{
			{ProductID: 1, Quantity: 1, Condition: ConditionNew},
			{ProductID: 2, Quantity: 0},
		}, "defeito", ReturnTypeReturn, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, ReturnStatusPending, r.Status)
		assert.Equal(t, valueobject.Cents(1000), r.TotalRefund)
		require.Len(t, r.Items, 1)
		assert.Equal(t, int64(42), r.SaleID)
		assert.Equal(t, "Return - defeito", r.RestockReason())
	})

	t.Run("rejects quantity above the sale line", func(t *testing.T) {
		_, err := NewReturn(persistedSale(t), []ReturnLine{{ProductID: 1, Quantity: 3}}, "x", ReturnTypeReturn, 3, nil)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("counts earlier returns", func(t *testing.T) {
		_, err := NewReturn(persistedSale(t), []ReturnLine{{ProductID: 1, Quantity: 2}}, "x", ReturnTypeReturn, 3,
			map[int64]int64{1: 1})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects product not on sale", func(t *testing.T) {
		_, err := NewReturn(persistedSale(t), []ReturnLine{{ProductID: 9, Quantity: 1}}, "x", ReturnTypeReturn, 3, nil)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("requires a selected item", func(t *testing.T) {
		_, err := NewReturn(persistedSale(t), []ReturnLine{{ProductID: 1, Quantity: 0}}, "x", ReturnTypeReturn, 3, nil)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("requires a reason", func(t *testing.T) {
		_, err := NewReturn(persistedSale(t), []ReturnLine{{ProductID: 1, Quantity: 1}}, " ", ReturnTypeReturn, 3, nil)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestReturn_RestockItems(t *testing.T) {
	t.Run("damaged items are never restocked", func(t *testing.T) {
		r, err := NewReturn(persistedSale(t), []ReturnLine{
			{ProductID: 1, Quantity: 2, Condition: ConditionDamaged},
			{ProductID: 2, Quantity: 1, Condition: ConditionDamaged},
		}, "quebrado", ReturnTypeReturn, 3, nil)
		require.NoError(t, err)
		assert.Empty(t, r.RestockItems())
	})

	t.Run("used items are restocked", func(t *testing.T) {
		r, err := NewReturn(persistedSale(t), []ReturnLine{
			{ProductID: 1, Quantity: 1, Condition: ConditionUsed},
			{ProductID: 2, Quantity: 1, Condition: ConditionDamaged},
		}, "x", ReturnTypeReturn, 3, nil)
		require.NoError(t, err)
		items := r.RestockItems()
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].ProductID)
	})

	t.Run("one entry per product across conditions", func(t *testing.T) {
		r, err := NewReturn(persistedSale(t), []ReturnLine{
			{ProductID: 1, Quantity: 1, Condition: ConditionNew},
			{ProductID: 1, Quantity: 1, Condition: ConditionUsed},
			{ProductID: 2, Quantity: 1, Condition: ConditionDamaged},
		}, "x", ReturnTypeReturn, 3, nil)
		require.NoError(t, err)
		require.Len(t, r.Items, 3)
		items := r.RestockItems()
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].ProductID)
		assert.Equal(t, int64(2), items[0].Quantity)
	})

	t.Run("exchanges do not restock", func(t *testing.T) {
		r, err := NewReturn(persistedSale(t), []ReturnLine{{ProductID: 1, Quantity: 1}}, "tamanho", ReturnTypeExchange, 3, nil)
		require.NoError(t, err)
		assert.Empty(t, r.RestockItems())
	})
}

func TestReturn_TransitionTo(t *testing.T) {
	t.Run("processed stamps processed_at and is terminal", func(t *testing.T) {
		r, _ := NewReturn(persistedSale(t), []ReturnLine{{ProductID: 1, Quantity: 1}}, "x", ReturnTypeReturn, 3, nil)
		require.NoError(t, r.TransitionTo(ReturnStatusProcessed))
		assert.NotNil(t, r.ProcessedAt)

		err := r.TransitionTo(ReturnStatusCancelled)
		assert.Equal(t, shared.CodeInvalidState, shared.ErrorCode(err))
	})

	t.Run("cancelled has no processed_at", func(t *testing.T) {
		r, _ := NewReturn(persistedSale(t), []ReturnLine{{ProductID: 1, Quantity: 1}}, "x", ReturnTypeReturn, 3, nil)
		require.NoError(t, r.TransitionTo(ReturnStatusCancelled))
		assert.Nil(t, r.ProcessedAt)
		assert.Error(t, r.TransitionTo(ReturnStatusProcessed))
	})

	t.Run("cannot move back to pending", func(t *testing.T) {
		r, _ := NewReturn(persistedSale(t), []ReturnLine{{ProductID: 1, Quantity: 1}}, "x", ReturnTypeReturn, 3, nil)
		assert.Error(t, r.TransitionTo(ReturnStatusPending))
	})
}

func TestExchange(t *testing.T) {
	sale := persistedSale(t)
	r, err := NewReturn(sale, []ReturnLine{{ProductID: 1, Quantity: 1}}, "tamanho", ReturnTypeExchange, 3, nil)
	require.NoError(t, err)
	r.ID = 5

	ex, err := NewExchangeFromReturn(r)
	require.NoError(t, err)
	assert.Equal(t, int64(42), ex.OriginalSaleID)
	require.NotNil(t, ex.ReturnID)
	assert.Equal(t, int64(5), *ex.ReturnID)

	t.Run("rejects the original sale as replacement", func(t *testing.T) {
		assert.Error(t, ex.LinkReplacementSale(sale))
	})

	t.Run("links replacement and processes", func(t *testing.T) {
		replacement, err := NewSale(cartOf(SaleItem{ProductID: 2, Quantity: 1, UnitPrice: valueobject.Cents(450)}))
		require.NoError(t, err)
		replacement.ID = 43

		require.NoError(t, ex.LinkReplacementSale(replacement))
		require.NotNil(t, ex.NewSaleID)
		assert.Equal(t, int64(43), *ex.NewSaleID)
		assert.Equal(t, ReturnStatusProcessed, ex.Status)
		assert.Len(t, ex.NewItems, 1)
		assert.Error(t, ex.LinkReplacementSale(replacement))
	})

	t.Run("refund returns cannot open exchanges", func(t *testing.T) {
		refund, _ := NewReturn(sale, []ReturnLine{{ProductID: 1, Quantity: 1}}, "x", ReturnTypeReturn, 3, nil)
		_, err := NewExchangeFromReturn(refund)
		assert.Error(t, err)
	})
}

func TestParseLegacyReturnNames(t *testing.T) {
	c, err := ParseItemCondition("danificada")
	require.NoError(t, err)
	assert.Equal(t, ConditionDamaged, c)
	c, err = ParseItemCondition("")
	require.NoError(t, err)
	assert.Equal(t, ConditionNew, c)
	_, err = ParseItemCondition("broken")
	assert.Error(t, err)

	typ, err := ParseReturnType("troca")
	require.NoError(t, err)
	assert.Equal(t, ReturnTypeExchange, typ)

	st, err := ParseReturnStatus("processada")
	require.NoError(t, err)
	assert.Equal(t, ReturnStatusProcessed, st)
	_, err = ParseReturnStatus("done")
	assert.Error(t, err)
}
