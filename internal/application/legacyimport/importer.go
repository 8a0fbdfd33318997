// Package legacyimport copies the offline store of the old client into the
// relational backend. Collections are inserted in dependency order and every
// reference is rewritten through the old-id to new-id map of its target.
package legacyimport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/erp/pdv/internal/domain/catalog"
	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/domain/inventory"
	"github.com/erp/pdv/internal/domain/partner"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"github.com/erp/pdv/internal/domain/trade"
	"github.com/erp/pdv/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Legacy collection names, as bucket names in the source file
const (
	CollectionUsers          = "users"
	CollectionCustomers      = "customers"
	CollectionProducts       = "products"
	CollectionSales          = "sales"
	CollectionCreditors      = "creditors"
	CollectionInstallments   = "carneInstallments"
	CollectionCreditSales    = "creditSales"
	CollectionStockMovements = "stockMovements"
	CollectionExpenses       = "expenses"
	CollectionReturns        = "returns"
	CollectionExchanges      = "exchanges"
)

// Order is the insert order; every collection comes after the ones it references
var Order = []string{
	CollectionUsers,
	CollectionCustomers,
	CollectionProducts,
	CollectionSales,
	CollectionCreditors,
	CollectionInstallments,
	CollectionCreditSales,
	CollectionStockMovements,
	CollectionExpenses,
	CollectionReturns,
	CollectionExchanges,
}

// DefaultOperatorID is assigned to records whose operator is unknown
const DefaultOperatorID int64 = 1

// LegacySource yields raw JSON rows per collection
type LegacySource interface {
	ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error)
}

// Sink bulk-inserts domain records and writes the assigned IDs back onto
// them, preserving input order.
type Sink interface {
	InsertUsers(ctx context.Context, users []*identity.User) error
	InsertCustomers(ctx context.Context, customers []*partner.Customer) error
	InsertProducts(ctx context.Context, products []*catalog.Product) error
	InsertSales(ctx context.Context, sales []*trade.Sale) error
	InsertCreditors(ctx context.Context, creditors []*finance.Creditor) error
	InsertInstallments(ctx context.Context, installments []*finance.CarneInstallment) error
	InsertCreditSales(ctx context.Context, rows []*finance.CreditSale) error
	InsertMovements(ctx context.Context, movements []*inventory.StockMovement) error
	InsertExpenses(ctx context.Context, expenses []*finance.Expense) error
	InsertReturns(ctx context.Context, returns []*trade.Return) error
	InsertExchanges(ctx context.Context, exchanges []*trade.Exchange) error
}

// SkippedRow is a legacy row that was not inserted
type SkippedRow struct {
	Collection string `json:"collection"`
	LegacyID   int64  `json:"legacy_id"`
	Reason     string `json:"reason"`
}

// Report summarizes an import run
type Report struct {
	Counts  map[string]int             `json:"counts"`
	Skipped []SkippedRow               `json:"skipped"`
	IDMaps  map[string]map[int64]int64 `json:"id_maps"`
}

// NewID looks up the new id of a legacy row
func (r *Report) NewID(collection string, legacyID int64) (int64, bool) {
	id, ok := r.IDMaps[collection][legacyID]
	return id, ok
}

func (r *Report) skip(collection string, legacyID int64, format string, args ...any) {
	r.Skipped = append(r.Skipped, SkippedRow{
		Collection: collection,
		LegacyID:   legacyID,
		Reason:     fmt.Sprintf(format, args...),
	})
}

// Importer runs the migration
type Importer struct {
	source LegacySource
	sink   Sink
	logger *zap.Logger
	now    func() time.Time
}

// NewImporter creates a new Importer
func NewImporter(source LegacySource, sink Sink, logger *zap.Logger) *Importer {
	return &Importer{
		source: source,
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

type step struct {
	collection string
	run        func(ctx context.Context, rows []json.RawMessage, report *Report) error
}

// Run copies every collection. The first failing collection aborts the run;
// the report still describes what was inserted before it.
func (i *Importer) Run(ctx context.Context) (*Report, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "legacyimport", "run")
	defer span.End()

	report := &Report{
		Counts: make(map[string]int, len(Order)),
		IDMaps: make(map[string]map[int64]int64, len(Order)),
	}
	steps := []step{
		{CollectionUsers, i.importUsers},
		{CollectionCustomers, i.importCustomers},
		{CollectionProducts, i.importProducts},
		{CollectionSales, i.importSales},
		{CollectionCreditors, i.importCreditors},
		{CollectionInstallments, i.importInstallments},
		{CollectionCreditSales, i.importCreditSales},
		{CollectionStockMovements, i.importMovements},
		{CollectionExpenses, i.importExpenses},
		{CollectionReturns, i.importReturns},
		{CollectionExchanges, i.importExchanges},
	}

	for _, s := range steps {
		rows, err := i.source.ReadAll(ctx, s.collection)
		if err != nil {
			telemetry.RecordError(span, err)
			return report, fmt.Errorf("import %s: %w", s.collection, err)
		}
		report.IDMaps[s.collection] = make(map[int64]int64, len(rows))
		if err := s.run(ctx, rows, report); err != nil {
			telemetry.RecordError(span, err)
			return report, fmt.Errorf("import %s: %w", s.collection, err)
		}
		i.logger.Info("Legacy collection imported",
			zap.String("collection", s.collection),
			zap.Int("read", len(rows)),
			zap.Int("inserted", report.Counts[s.collection]))
	}

	if len(report.Skipped) > 0 {
		i.logger.Warn("Legacy rows skipped", zap.Int("count", len(report.Skipped)))
	}
	return report, nil
}

// decode unmarshals rows; malformed rows are skipped
func decode[T any](collection string, rows []json.RawMessage, report *Report) []T {
	out := make([]T, 0, len(rows))
	for n, raw := range rows {
		var row T
		if err := json.Unmarshal(raw, &row); err != nil {
			report.skip(collection, int64(-(n + 1)), "malformed row: %v", err)
			continue
		}
		out = append(out, row)
	}
	return out
}

// remember records old to new ids by insert index
func remember(report *Report, collection string, legacyIDs []int64, newIDs func(int) int64) {
	m := report.IDMaps[collection]
	for idx, old := range legacyIDs {
		m[old] = newIDs(idx)
	}
	report.Counts[collection] = len(legacyIDs)
}

func (i *Importer) base(created legacyTime) shared.BaseAggregateRoot {
	b := shared.NewBaseAggregateRoot()
	b.CreatedAt = created.Or(b.CreatedAt)
	b.UpdatedAt = b.CreatedAt
	return b
}

// optionalRef maps an optional reference. ok is false when the reference
// is set but points at a row that was not imported.
func optionalRef(report *Report, collection string, legacy *int64) (*int64, bool) {
	if legacy == nil || *legacy == 0 {
		return nil, true
	}
	id, found := report.NewID(collection, *legacy)
	if !found {
		return nil, false
	}
	return &id, true
}

func (i *Importer) operator(report *Report, legacy *int64) int64 {
	if legacy != nil {
		if id, ok := report.NewID(CollectionUsers, *legacy); ok {
			return id
		}
	}
	return DefaultOperatorID
}

func (i *Importer) importUsers(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyUser](CollectionUsers, rows, report)
	users := make([]*identity.User, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		role, err := identity.ParseRole(row.Role)
		if err != nil {
			report.skip(CollectionUsers, row.ID, "unknown role %q", row.Role)
			continue
		}
		u := &identity.User{
			BaseAggregateRoot: i.base(row.CreatedAt),
			Username:          strings.TrimSpace(row.Username),
			Role:              role,
		}
		if u.Username == "" {
			report.skip(CollectionUsers, row.ID, "empty username")
			continue
		}
		// the old client kept plaintext passwords
		if strings.HasPrefix(row.Password, "$2") {
			u.PasswordHash = row.Password
		} else if err := u.SetPassword(row.Password); err != nil {
			report.skip(CollectionUsers, row.ID, "password rejected: %v", err)
			continue
		}
		users = append(users, u)
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertUsers(ctx, users); err != nil {
		return err
	}
	remember(report, CollectionUsers, ids, func(n int) int64 { return users[n].ID })
	return nil
}

func (i *Importer) importCustomers(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyCustomer](CollectionCustomers, rows, report)
	customers := make([]*partner.Customer, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		if strings.TrimSpace(row.Name) == "" {
			report.skip(CollectionCustomers, row.ID, "empty name")
			continue
		}
		customers = append(customers, &partner.Customer{
			BaseAggregateRoot: i.base(row.CreatedAt),
			Name:              strings.TrimSpace(row.Name),
			CPF:               row.CPF,
			Email:             row.Email,
			Phone:             row.Phone,
			Address:           row.Address,
		})
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertCustomers(ctx, customers); err != nil {
		return err
	}
	remember(report, CollectionCustomers, ids, func(n int) int64 { return customers[n].ID })
	return nil
}

func (i *Importer) importProducts(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyProduct](CollectionProducts, rows, report)
	products := make([]*catalog.Product, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	seenBarcodes := make(map[string]bool)
	for _, row := range decoded {
		if strings.TrimSpace(row.Name) == "" {
			report.skip(CollectionProducts, row.ID, "empty name")
			continue
		}
		barcode := strings.TrimSpace(row.Barcode)
		if barcode != "" && seenBarcodes[barcode] {
			// barcodes are unique; keep the product without it
			i.logger.Warn("Duplicate legacy barcode dropped",
				zap.Int64("legacy_id", row.ID), zap.String("barcode", barcode))
			barcode = ""
		}
		if barcode != "" {
			seenBarcodes[barcode] = true
		}
		products = append(products, &catalog.Product{
			BaseAggregateRoot: i.base(row.CreatedAt),
			Name:              strings.TrimSpace(row.Name),
			Description:       row.Description,
			Price:             row.Price.Money,
			Stock:             row.Stock,
			Category:          row.Category,
			MinStock:          row.MinStock,
			Barcode:           barcode,
			Supplier:          row.Supplier,
		})
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertProducts(ctx, products); err != nil {
		return err
	}
	remember(report, CollectionProducts, ids, func(n int) int64 { return products[n].ID })
	return nil
}

// saleItems remaps product ids of frozen cart lines
func saleItems(report *Report, lines []legacySaleItem) ([]trade.SaleItem, valueobject.Money, error) {
	items := make([]trade.SaleItem, 0, len(lines))
	var subtotal valueobject.Money
	for _, line := range lines {
		pid, ok := report.NewID(CollectionProducts, line.ProductID)
		if !ok {
			return nil, 0, fmt.Errorf("product %d not imported", line.ProductID)
		}
		item := trade.SaleItem{
			ProductID:   pid,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price.Money,
		}
		subtotal = subtotal.Add(item.Total())
		items = append(items, item)
	}
	return items, subtotal, nil
}

func returnItems(report *Report, lines []legacyReturnItem) ([]trade.ReturnItem, error) {
	items := make([]trade.ReturnItem, 0, len(lines))
	for _, line := range lines {
		pid, ok := report.NewID(CollectionProducts, line.ProductID)
		if !ok {
			return nil, fmt.Errorf("product %d not imported", line.ProductID)
		}
		cond, err := trade.ParseItemCondition(line.Condition)
		if err != nil {
			return nil, err
		}
		items = append(items, trade.ReturnItem{
			ProductID:   pid,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.Price.Money,
			Condition:   cond,
		})
	}
	return items, nil
}

func (i *Importer) importSales(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacySale](CollectionSales, rows, report)
	sales := make([]*trade.Sale, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		method, err := trade.ParsePaymentMethod(row.PaymentMethod)
		if err != nil {
			report.skip(CollectionSales, row.ID, "unknown payment method %q", row.PaymentMethod)
			continue
		}
		customerID, ok := optionalRef(report, CollectionCustomers, row.CustomerID)
		if !ok {
			report.skip(CollectionSales, row.ID, "customer %d not imported", *row.CustomerID)
			continue
		}
		items, subtotal, err := saleItems(report, row.Items)
		if err != nil {
			report.skip(CollectionSales, row.ID, "%v", err)
			continue
		}
		installments := row.Installments
		if installments < 1 {
			installments = 1
		}
		sale := &trade.Sale{
			BaseEntity:       i.base(row.CreatedAt).BaseEntity,
			Items:            items,
			Subtotal:         subtotal,
			Discount:         row.Discount.Money,
			Total:            row.Total.Money,
			PaymentMethod:    method,
			CustomerID:       customerID,
			Installments:     installments,
			InstallmentValue: row.InstallmentValue.Money,
			UserID:           i.operator(report, row.UserID),
		}
		sales = append(sales, sale)
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertSales(ctx, sales); err != nil {
		return err
	}
	remember(report, CollectionSales, ids, func(n int) int64 { return sales[n].ID })
	return nil
}

func (i *Importer) importCreditors(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyCreditor](CollectionCreditors, rows, report)
	creditors := make([]*finance.Creditor, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		customerID, ok := report.NewID(CollectionCustomers, row.CustomerID)
		if !ok {
			report.skip(CollectionCreditors, row.ID, "customer %d not imported", row.CustomerID)
			continue
		}
		status := finance.CreditorStatusPending
		var err error
		if row.Status != "" {
			status, err = finance.ParseCreditorStatus(row.Status)
		}
		if err != nil {
			report.skip(CollectionCreditors, row.ID, "unknown status %q", row.Status)
			continue
		}
		// overdue is derived on read
		if status == finance.CreditorStatusOverdue {
			status = finance.CreditorStatusPending
		}
		desc := strings.TrimSpace(row.Description)
		if desc == "" {
			desc = finance.DefaultCreditorDescription
		}
		creditors = append(creditors, &finance.Creditor{
			BaseAggregateRoot: i.base(row.CreatedAt),
			CustomerID:        customerID,
			CustomerName:      row.CustomerName,
			TotalDebt:         row.TotalDebt.Money,
			PaidAmount:        row.PaidAmount.Money,
			RemainingAmount:   row.RemainingAmount.Money,
			DueDate:           row.DueDate.Or(i.now()),
			Description:       desc,
			Status:            status,
		})
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertCreditors(ctx, creditors); err != nil {
		return err
	}
	remember(report, CollectionCreditors, ids, func(n int) int64 { return creditors[n].ID })
	return nil
}

func (i *Importer) importInstallments(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyInstallment](CollectionInstallments, rows, report)
	installments := make([]*finance.CarneInstallment, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		creditorID, ok := report.NewID(CollectionCreditors, row.CreditorID)
		if !ok {
			report.skip(CollectionInstallments, row.ID, "creditor %d not imported", row.CreditorID)
			continue
		}
		installments = append(installments, &finance.CarneInstallment{
			BaseAggregateRoot: i.base(row.CreatedAt),
			CreditorID:        creditorID,
			InstallmentNumber: row.InstallmentNumber,
			DueDate:           row.DueDate.Or(i.now()),
			Amount:            row.Amount.Money,
			Paid:              row.Paid,
			PaidAt:            row.PaidAt.Ptr(),
		})
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertInstallments(ctx, installments); err != nil {
		return err
	}
	remember(report, CollectionInstallments, ids, func(n int) int64 { return installments[n].ID })
	return nil
}

func (i *Importer) importCreditSales(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyCreditSale](CollectionCreditSales, rows, report)
	out := make([]*finance.CreditSale, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		saleID, ok := report.NewID(CollectionSales, row.SaleID)
		if !ok {
			report.skip(CollectionCreditSales, row.ID, "sale %d not imported", row.SaleID)
			continue
		}
		creditorID, ok := report.NewID(CollectionCreditors, row.CreditorID)
		if !ok {
			report.skip(CollectionCreditSales, row.ID, "creditor %d not imported", row.CreditorID)
			continue
		}
		out = append(out, &finance.CreditSale{
			BaseEntity:        i.base(row.CreatedAt).BaseEntity,
			SaleID:            saleID,
			CreditorID:        creditorID,
			InstallmentNumber: row.InstallmentNumber,
			InstallmentValue:  row.InstallmentValue.Money,
			DueDate:           row.DueDate.Or(i.now()),
			PaidDate:          row.PaidDate.Ptr(),
			Status:            finance.ParseCreditSaleStatus(row.Status),
		})
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertCreditSales(ctx, out); err != nil {
		return err
	}
	remember(report, CollectionCreditSales, ids, func(n int) int64 { return out[n].ID })
	return nil
}

func (i *Importer) importMovements(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyMovement](CollectionStockMovements, rows, report)
	movements := make([]*inventory.StockMovement, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		productID, ok := report.NewID(CollectionProducts, row.ProductID)
		if !ok {
			report.skip(CollectionStockMovements, row.ID, "product %d not imported", row.ProductID)
			continue
		}
		mt, err := inventory.ParseMovementType(row.Type)
		if err != nil {
			report.skip(CollectionStockMovements, row.ID, "unknown type %q", row.Type)
			continue
		}
		if row.Quantity <= 0 {
			report.skip(CollectionStockMovements, row.ID, "non-positive quantity %d", row.Quantity)
			continue
		}
		movements = append(movements, &inventory.StockMovement{
			ProductID:   productID,
			ProductName: row.ProductName,
			Type:        mt,
			Quantity:    row.Quantity,
			Reason:      row.Reason,
			CreatedAt:   row.CreatedAt.Or(i.now()),
		})
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertMovements(ctx, movements); err != nil {
		return err
	}
	remember(report, CollectionStockMovements, ids, func(n int) int64 { return movements[n].ID })
	return nil
}

func (i *Importer) importExpenses(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyExpense](CollectionExpenses, rows, report)
	expenses := make([]*finance.Expense, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		expenses = append(expenses, &finance.Expense{
			BaseAggregateRoot: i.base(row.CreatedAt),
			Description:       row.Description,
			Amount:            row.Amount.Money,
			Category:          row.Category,
			Supplier:          row.Supplier,
			DueDate:           row.DueDate.Ptr(),
			Paid:              row.Paid,
		})
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertExpenses(ctx, expenses); err != nil {
		return err
	}
	remember(report, CollectionExpenses, ids, func(n int) int64 { return expenses[n].ID })
	return nil
}

func (i *Importer) importReturns(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyReturn](CollectionReturns, rows, report)
	returns := make([]*trade.Return, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		saleID, ok := report.NewID(CollectionSales, row.SaleID)
		if !ok {
			report.skip(CollectionReturns, row.ID, "sale %d not imported", row.SaleID)
			continue
		}
		customerID, ok := optionalRef(report, CollectionCustomers, row.CustomerID)
		if !ok {
			report.skip(CollectionReturns, row.ID, "customer %d not imported", *row.CustomerID)
			continue
		}
		typ, err := trade.ParseReturnType(row.Type)
		if err != nil {
			report.skip(CollectionReturns, row.ID, "unknown type %q", row.Type)
			continue
		}
		status, err := trade.ParseReturnStatus(row.Status)
		if err != nil {
			report.skip(CollectionReturns, row.ID, "unknown status %q", row.Status)
			continue
		}
		items, err := returnItems(report, row.Items)
		if err != nil {
			report.skip(CollectionReturns, row.ID, "%v", err)
			continue
		}
		returns = append(returns, &trade.Return{
			BaseAggregateRoot: i.base(row.CreatedAt),
			SaleID:            saleID,
			CustomerID:        customerID,
			UserID:            i.operator(report, row.UserID),
			Type:              typ,
			Reason:            row.Reason,
			Items:             items,
			TotalRefund:       row.TotalRefund.Money,
			Status:            status,
			ProcessedAt:       row.ProcessedAt.Ptr(),
		})
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertReturns(ctx, returns); err != nil {
		return err
	}
	remember(report, CollectionReturns, ids, func(n int) int64 { return returns[n].ID })
	return nil
}

func (i *Importer) importExchanges(ctx context.Context, rows []json.RawMessage, report *Report) error {
	decoded := decode[legacyExchange](CollectionExchanges, rows, report)
	exchanges := make([]*trade.Exchange, 0, len(decoded))
	ids := make([]int64, 0, len(decoded))
	for _, row := range decoded {
		originalID, ok := report.NewID(CollectionSales, row.OriginalSaleID)
		if !ok {
			report.skip(CollectionExchanges, row.ID, "sale %d not imported", row.OriginalSaleID)
			continue
		}
		newSaleID, ok := optionalRef(report, CollectionSales, row.NewSaleID)
		if !ok {
			report.skip(CollectionExchanges, row.ID, "replacement sale %d not imported", *row.NewSaleID)
			continue
		}
		customerID, ok := optionalRef(report, CollectionCustomers, row.CustomerID)
		if !ok {
			report.skip(CollectionExchanges, row.ID, "customer %d not imported", *row.CustomerID)
			continue
		}
		status, err := trade.ParseReturnStatus(row.Status)
		if err != nil {
			report.skip(CollectionExchanges, row.ID, "unknown status %q", row.Status)
			continue
		}
		returned, err := returnItems(report, row.ReturnedItems)
		if err != nil {
			report.skip(CollectionExchanges, row.ID, "%v", err)
			continue
		}
		newItems, _, err := saleItems(report, row.NewItems)
		if err != nil {
			report.skip(CollectionExchanges, row.ID, "%v", err)
			continue
		}
		exchanges = append(exchanges, &trade.Exchange{
			BaseAggregateRoot: i.base(row.CreatedAt),
			OriginalSaleID:    originalID,
			NewSaleID:         newSaleID,
			CustomerID:        customerID,
			UserID:            i.operator(report, row.UserID),
			Reason:            row.Reason,
			ReturnedItems:     returned,
			NewItems:          newItems,
			Status:            status,
			ProcessedAt:       row.ProcessedAt.Ptr(),
		})
		ids = append(ids, row.ID)
	}
	if err := i.sink.InsertExchanges(ctx, exchanges); err != nil {
		return err
	}
	remember(report, CollectionExchanges, ids, func(n int) int64 { return exchanges[n].ID })
	return nil
}
