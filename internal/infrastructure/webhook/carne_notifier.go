// Package webhook delivers ledger documents to external systems over HTTP.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	financeapp "github.com/erp/pdv/internal/application/finance"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/config"
	"go.uber.org/zap"
)

const maxErrorBody = 512

// CarneNotifier posts carnê payloads as JSON to a configured URL
type CarneNotifier struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewCarneNotifier creates the notifier. An empty URL yields a notifier
// that rejects every send with INVALID_STATE.
func NewCarneNotifier(cfg config.WebhookConfig, logger *zap.Logger) *CarneNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CarneNotifier{
		url:        cfg.CarneURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("webhook"),
	}
}

// SendCarne posts the payload; any non-2xx response is an error
func (n *CarneNotifier) SendCarne(ctx context.Context, payload financeapp.CarnePayload) error {
	if n.url == "" {
		return shared.NewDomainError(shared.CodeInvalidState, "Carnê webhook is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode carnê payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build carnê request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return shared.WrapDomainError(shared.CodeTransient, "Carnê webhook unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		n.logger.Warn("carnê webhook rejected payload",
			zap.Int64("creditor_id", payload.CreditorID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		code := shared.CodeTransient
		if resp.StatusCode < 500 {
			code = shared.CodeInvalidInput
		}
		return shared.NewDomainError(code, fmt.Sprintf("Carnê webhook answered %d", resp.StatusCode))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	n.logger.Info("carnê sent",
		zap.Int64("creditor_id", payload.CreditorID),
		zap.Int("installments", len(payload.Installments)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

var _ financeapp.CarneNotifier = (*CarneNotifier)(nil)
