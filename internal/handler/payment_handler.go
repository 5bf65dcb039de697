package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"payment-engine/internal/engine"
	"payment-engine/internal/metrics"
	"payment-engine/internal/models"
	"payment-engine/internal/recorder"
	"payment-engine/internal/repository"
)

type PaymentHandler struct {
	engine   *engine.Orchestrator
	recorder *recorder.Recorder
	tracker  *metrics.Tracker
	logger   *zap.Logger
}

func NewPaymentHandler(eng *engine.Orchestrator, rec *recorder.Recorder, tracker *metrics.Tracker, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		engine:   eng,
		recorder: rec,
		tracker:  tracker,
		logger:   logger,
	}
}

// ProcessPayment handles POST /api/v1/payments. A declined payment is a
// domain result, not a transport error; it is returned with 402 and the full
// structured result body.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.engine.Process(c.Request.Context(), &req)
	if !result.Success {
		c.JSON(http.StatusPaymentRequired, result)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetPayment handles GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	record, err := h.recorder.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		h.logger.Error("failed to load payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": record})
}

type refundRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Reason string  `json:"reason"`
}

// RefundPayment handles POST /api/v1/payments/:id/refund
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refund, err := h.recorder.Refund(c.Request.Context(), c.Param("id"), req.Amount, req.Reason)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		h.logger.Error("failed to refund payment", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"refund": refund})
}

// MetricsSamples handles GET /api/v1/metrics/samples
func (h *PaymentHandler) MetricsSamples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"samples":      h.tracker.Snapshot(),
		"success_rate": h.tracker.SuccessRate(),
		"summaries":    h.tracker.Summaries(),
	})
}
