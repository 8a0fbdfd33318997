package shared

import "fmt"

// Warning reports a secondary step that failed after the primary record was
// committed. The operation itself succeeded; the operator is expected to act
// on the message (for example, re-enter a creditor by hand).
type Warning struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// Steps named in warnings
const (
	StepStockUpdate    = "stock_update"
	StepStockMovement  = "stock_movement"
	StepCreditLedger   = "credit_ledger"
	StepDocument       = "document"
	StepRestock        = "restock"
	StepIdempotencyKey = "idempotency_key"
	StepExchange       = "exchange"
	StepPaymentHistory = "payment_history"
)

// NewWarning builds a warning for step
func NewWarning(step, format string, args ...any) Warning {
	return Warning{Step: step, Message: fmt.Sprintf(format, args...)}
}

func (w Warning) String() string {
	return w.Step + ": " + w.Message
}
