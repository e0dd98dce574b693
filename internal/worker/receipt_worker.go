package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: generates the order PDF, marks
// the receipt issued and enqueues an email to the client when one is on
// file. Failures schedule a retry via next_retry_at; the retry cron picks
// them up until MaxReceiptRetries.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gutoberny/BernyFlow/internal/infra"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

const MaxReceiptRetries = 3

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	ReceiptID string `json:"receipt_id"`
}

type ReceiptWorker struct {
	receipts       repository.ReceiptRepository
	orders         repository.OrderRepository
	companies      repository.CompanyRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewReceiptWorker(
	receipts repository.ReceiptRepository,
	orders repository.OrderRepository,
	companies repository.CompanyRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *ReceiptWorker {
	return &ReceiptWorker{
		receipts:       receipts,
		orders:         orders,
		companies:      companies,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single receipt job.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	receiptID, err := uuid.Parse(payload.ReceiptID)
	if err != nil {
		log.Error().Str("receipt_id", payload.ReceiptID).Msg("receipt_worker: invalid receipt_id")
		return
	}

	rec, err := w.receipts.FindByID(ctx, receiptID)
	if err != nil {
		log.Error().Err(err).Str("receipt_id", payload.ReceiptID).Msg("receipt_worker: receipt not found")
		return
	}
	if rec.Status == model.ReceiptIssued {
		return
	}

	if issueErr := w.Issue(ctx, rec); issueErr != nil {
		w.recordFailure(ctx, rec, issueErr)
	}
}

// Issue generates the PDF, marks the receipt issued and enqueues the client
// email. Shared with the retry cron.
func (w *ReceiptWorker) Issue(ctx context.Context, rec *model.Receipt) error {
	order, err := w.orders.FindByID(ctx, rec.CompanyID, rec.ServiceOrderID)
	if err != nil {
		return fmt.Errorf("receipt: load order: %w", err)
	}

	companyName := "BernyFlow"
	if company, err := w.companies.FindByID(ctx, rec.CompanyID); err == nil {
		companyName = company.Name
	}

	pdfPath, err := infra.GenerateOrderPDF(order, companyName, w.pdfStoragePath)
	if err != nil {
		return err
	}

	rec.Status = model.ReceiptIssued
	rec.PDFPath = &pdfPath
	rec.NextRetryAt = nil
	rec.LastError = nil
	if err := w.receipts.Update(ctx, rec); err != nil {
		return err
	}
	log.Info().Str("pdf", pdfPath).Str("order_id", rec.ServiceOrderID.String()).
		Msg("receipt_worker: receipt issued")

	if w.dispatcher != nil && order.Client != nil && order.Client.Email != nil && *order.Client.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail: *order.Client.Email,
			Subject: fmt.Sprintf("Recibo OS #%d - %s", order.Number, companyName),
			Body:    fmt.Sprintf("Segue em anexo o recibo da ordem de servico #%d.\nTotal: R$ %s", order.Number, order.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *order.Client.Email).
				Msg("receipt_worker: failed to enqueue email")
		}
	}
	return nil
}

// recordFailure schedules the next retry or, past the cap, parks the receipt
// and ships the job to the DLQ.
func (w *ReceiptWorker) recordFailure(ctx context.Context, rec *model.Receipt, cause error) {
	rec.Status = model.ReceiptError
	rec.RetryCount++
	errMsg := cause.Error()
	rec.LastError = &errMsg

	if rec.RetryCount >= MaxReceiptRetries {
		rec.NextRetryAt = nil
		log.Error().
			Str("receipt_id", rec.ID.String()).
			Int("retries", rec.RetryCount).
			Msg("receipt_worker: max retries exceeded, moving to DLQ")

		payload, _ := json.Marshal(ReceiptJobPayload{ReceiptID: rec.ID.String()})
		if w.dispatcher != nil && w.dispatcher.rdb != nil {
			SendToDLQ(ctx, w.dispatcher.rdb, QueueReceipt, "receipt", payload,
				fmt.Sprintf("max retries (%d) exceeded: %s", MaxReceiptRetries, errMsg),
				rec.RetryCount)
		}
	} else {
		nextRetry := time.Now().Add(computeRetryBackoff(rec.RetryCount))
		rec.NextRetryAt = &nextRetry
		log.Warn().
			Str("receipt_id", rec.ID.String()).
			Int("retry_count", rec.RetryCount).
			Time("next_retry_at", nextRetry).
			Msg("receipt_worker: generation failed, scheduled retry")
	}

	if err := w.receipts.Update(ctx, rec); err != nil {
		log.Error().Err(err).Str("receipt_id", rec.ID.String()).
			Msg("receipt_worker: failed to persist failure state")
	}
}

// computeRetryBackoff returns the delay before the next attempt: 30s, 60s, 120s…
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	return time.Duration(30*(1<<uint(retryCount-1))) * time.Second
}
