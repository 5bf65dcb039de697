package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"payment-engine/internal/fraud"
	"payment-engine/internal/metrics"
	"payment-engine/internal/models"
	"payment-engine/internal/postpayment"
	"payment-engine/internal/processor"
	"payment-engine/internal/recorder"
	"payment-engine/internal/validator"
)

// ProcessorRouter selects the processor for a payment method.
type ProcessorRouter interface {
	For(method models.PaymentMethod) processor.Processor
}

// Orchestrator sequences one authorization attempt: validate, score, route,
// authorize, record, post-payment. It is the single place that converts
// unexpected faults into the structured result type; nothing below it throws
// past this boundary.
type Orchestrator struct {
	processors ProcessorRouter
	recorder   *recorder.Recorder
	tracker    *metrics.Tracker
	post       *postpayment.Coordinator
	logger     *zap.Logger
	now        func() time.Time
}

func NewOrchestrator(processors ProcessorRouter, rec *recorder.Recorder, tracker *metrics.Tracker, post *postpayment.Coordinator, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		processors: processors,
		recorder:   rec,
		tracker:    tracker,
		post:       post,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the wall clock, used to pin the hour-of-day fraud rule
// in tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Process runs the full pipeline for one payment request. Every path returns
// a structured result; a failure at any stage short-circuits the rest.
func (o *Orchestrator) Process(ctx context.Context, req *models.PaymentRequest) *models.PaymentResult {
	if v := validator.Validate(req); !v.Valid {
		o.logger.Warn("payment request rejected",
			zap.String("error_code", v.ErrorCode),
			zap.String("reason", v.Message))
		o.track(req, models.AuthorizationOutcome{Success: false})
		return &models.PaymentResult{
			Success:   false,
			ErrorCode: v.ErrorCode,
			Message:   v.Message,
		}
	}

	assessment := fraud.Score(req, o.now())
	if assessment.Level == models.RiskLevelHigh {
		o.logger.Warn("high-risk payment rejected",
			zap.Int("score", assessment.Score),
			zap.Strings("factors", assessment.Factors))
		o.track(req, models.AuthorizationOutcome{Success: false})
		return &models.PaymentResult{
			Success:              false,
			ErrorCode:            models.ErrFraudDetected,
			Message:              "transaction flagged for manual review",
			RequiresManualReview: true,
			Fraud:                &assessment,
		}
	}

	return o.authorize(ctx, req, assessment)
}

// authorize covers every stage after scoring. Panics in a processor, the
// recorder, or post-payment are recovered here and surfaced as UNKNOWN_ERROR.
func (o *Orchestrator) authorize(ctx context.Context, req *models.PaymentRequest, assessment models.RiskAssessment) (result *models.PaymentResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("unexpected fault during authorization",
				zap.Any("panic", r),
				zap.String("method", string(req.Method)))
			o.track(req, models.AuthorizationOutcome{Success: false})
			result = &models.PaymentResult{
				Success:   false,
				ErrorCode: models.ErrUnknown,
				Message:   "internal error while processing payment",
				Fraud:     &assessment,
			}
		}
	}()

	proc := o.processors.For(req.Method)
	outcome := proc.Authorize(ctx, req)

	if !outcome.Success {
		o.logger.Info("payment declined",
			zap.String("method", string(req.Method)),
			zap.String("error_code", outcome.ErrorCode))
		o.track(req, outcome)
		return &models.PaymentResult{
			Success:   false,
			ErrorCode: outcome.ErrorCode,
			Message:   outcome.Message,
			Retryable: outcome.Retryable,
			Metadata:  outcome.Metadata,
			Fraud:     &assessment,
		}
	}

	recordID, err := o.recorder.Record(ctx, req, outcome, assessment)
	if err != nil {
		o.logger.Error("failed to record payment", zap.Error(err),
			zap.String("transaction_id", outcome.TransactionID))
		o.track(req, models.AuthorizationOutcome{Success: false})
		return &models.PaymentResult{
			Success:   false,
			ErrorCode: models.ErrUnknown,
			Message:   "payment could not be recorded",
			Fraud:     &assessment,
		}
	}

	o.track(req, outcome)

	// Best-effort side effects; the result no longer depends on them.
	o.post.Run(ctx, req, outcome.TransactionID)

	return &models.PaymentResult{
		Success:          true,
		RecordID:         recordID,
		TransactionID:    outcome.TransactionID,
		AuthCode:         outcome.AuthCode,
		ResponseCode:     outcome.ResponseCode,
		ProcessingTimeMs: outcome.ProcessingTimeMs,
		Metadata:         outcome.Metadata,
		Fraud:            &assessment,
	}
}

func (o *Orchestrator) track(req *models.PaymentRequest, outcome models.AuthorizationOutcome) {
	sample := models.MetricsSample{
		Method:           req.Method,
		Amount:           req.Amount,
		ProcessingTimeMs: outcome.ProcessingTimeMs,
		Success:          outcome.Success,
		Timestamp:        o.now(),
	}
	if brand, ok := outcome.Metadata["card_brand"].(string); ok {
		sample.CardBrand = brand
	}
	o.tracker.Track(sample)
}
