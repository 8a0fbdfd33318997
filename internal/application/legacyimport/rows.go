package legacyimport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/erp/pdv/internal/domain/shared/valueobject"
)

// The legacy client stored camelCase rows with money as floating reais.

type legacyUser struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	Role      string     `json:"role"`
	CreatedAt legacyTime `json:"createdAt"`
}

type legacyCustomer struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	CPF       string     `json:"cpf"`
	CreatedAt legacyTime `json:"createdAt"`
}

type legacyProduct struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Price       legacyMoney `json:"price"`
	Stock       int64       `json:"stock"`
	Category    string      `json:"category"`
	Barcode     string      `json:"barcode"`
	Description string      `json:"description"`
	Supplier    string      `json:"supplier"`
	MinStock    int64       `json:"minStock"`
	CreatedAt   legacyTime  `json:"createdAt"`
}

type legacySaleItem struct {
	ProductID   int64       `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int64       `json:"quantity"`
	Price       legacyMoney `json:"price"`
}

type legacySale struct {
	ID               int64            `json:"id"`
	Items            []legacySaleItem `json:"items"`
	Total            legacyMoney      `json:"total"`
	PaymentMethod    string           `json:"paymentMethod"`
	Discount         legacyMoney      `json:"discount"`
	CustomerID       *int64           `json:"customerId"`
	UserID           *int64           `json:"userId"`
	Installments     int              `json:"installments"`
	InstallmentValue legacyMoney      `json:"installmentValue"`
	CreatedAt        legacyTime       `json:"createdAt"`
}

type legacyCreditor struct {
	ID              int64       `json:"id"`
	CustomerID      int64       `json:"customerId"`
	CustomerName    string      `json:"customerName"`
	TotalDebt       legacyMoney `json:"totalDebt"`
	PaidAmount      legacyMoney `json:"paidAmount"`
	RemainingAmount legacyMoney `json:"remainingAmount"`
	DueDate         legacyTime  `json:"dueDate"`
	Description     string      `json:"description"`
	Status          string      `json:"status"`
	CreatedAt       legacyTime  `json:"createdAt"`
}

type legacyInstallment struct {
	ID                int64       `json:"id"`
	CreditorID        int64       `json:"creditorId"`
	InstallmentNumber int         `json:"installmentNumber"`
	DueDate           legacyTime  `json:"dueDate"`
	Amount            legacyMoney `json:"amount"`
	Paid              bool        `json:"paid"`
	PaidAt            legacyTime  `json:"paidAt"`
	CreatedAt         legacyTime  `json:"createdAt"`
}

type legacyCreditSale struct {
	ID                int64       `json:"id"`
	SaleID            int64       `json:"saleId"`
	CreditorID        int64       `json:"creditorId"`
	InstallmentNumber int         `json:"installmentNumber"`
	InstallmentValue  legacyMoney `json:"installmentValue"`
	DueDate           legacyTime  `json:"dueDate"`
	PaidDate          legacyTime  `json:"paidDate"`
	Status            string      `json:"status"`
	CreatedAt         legacyTime  `json:"createdAt"`
}

type legacyMovement struct {
	ID          int64      `json:"id"`
	ProductID   int64      `json:"productId"`
	ProductName string     `json:"productName"`
	Type        string     `json:"type"`
	Quantity    int64      `json:"quantity"`
	Reason      string     `json:"reason"`
	CreatedAt   legacyTime `json:"createdAt"`
}

type legacyExpense struct {
	ID          int64       `json:"id"`
	Supplier    string      `json:"supplier"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Amount      legacyMoney `json:"amount"`
	DueDate     legacyTime  `json:"dueDate"`
	Paid        bool        `json:"paid"`
	CreatedAt   legacyTime  `json:"createdAt"`
}

type legacyReturnItem struct {
	ProductID   int64       `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int64       `json:"quantity"`
	Price       legacyMoney `json:"price"`
	Condition   string      `json:"condition"`
}

type legacyReturn struct {
	ID          int64              `json:"id"`
	SaleID      int64              `json:"saleId"`
	Items       []legacyReturnItem `json:"items"`
	Type        string             `json:"type"`
	Reason      string             `json:"reason"`
	TotalRefund legacyMoney        `json:"totalRefund"`
	Status      string             `json:"status"`
	CustomerID  *int64             `json:"customerId"`
	UserID      *int64             `json:"userId"`
	ProcessedAt legacyTime         `json:"processedAt"`
	CreatedAt   legacyTime         `json:"createdAt"`
}

type legacyExchange struct {
	ID             int64              `json:"id"`
	OriginalSaleID int64              `json:"originalSaleId"`
	NewSaleID      *int64             `json:"newSaleId"`
	ReturnedItems  []legacyReturnItem `json:"returnedItems"`
	NewItems       []legacySaleItem   `json:"newItems"`
	Reason         string             `json:"reason"`
	Status         string             `json:"status"`
	CustomerID     *int64             `json:"customerId"`
	UserID         *int64             `json:"userId"`
	ProcessedAt    legacyTime         `json:"processedAt"`
	CreatedAt      legacyTime         `json:"createdAt"`
}

// legacyMoney reads a float number of reais, or a numeric string
type legacyMoney struct {
	valueobject.Money
}

func (m *legacyMoney) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		m.Money = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	m.Money = valueobject.FromFloatRounded(f)
	return nil
}

var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// legacyTime reads ISO strings, plain dates, or epoch milliseconds.
// null and "" leave it zero.
type legacyTime struct {
	time.Time
}

func (t *legacyTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid date %s: %w", s, err)
	}
	for _, layout := range legacyTimeLayouts {
		if parsed, err := time.Parse(layout, str); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", str)
}

// Ptr returns nil for a zero time
func (t legacyTime) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// Or returns fallback for a zero time
func (t legacyTime) Or(fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t.Time
}
