package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Analyze classifies one message and explains the verdict
func (h *handler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAnalyzeRequest(c)
	if err != nil {
		h.l.Debug("Rejected analyze request", zap.Error(err))
		h.fail(c, err)
		return
	}

	result, err := h.svc.Analyze(ctx, req.Text)
	if err != nil {
		h.l.Error("Failed to analyze message", zap.Error(err))
		h.fail(c, err)
		return
	}

	resp, err := h.newAnalyzeResp(result, req.Renderer)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, resp)
}

// Annotate highlights reference words without classifying
func (h *handler) Annotate(c *gin.Context) {
	req, err := h.processAnnotateRequest(c)
	if err != nil {
		h.l.Debug("Rejected annotate request", zap.Error(err))
		h.fail(c, err)
		return
	}

	resp, err := h.newAnnotateResp(h.svc.Annotate(req.Text), req.Renderer)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, resp)
}

// Batch analyzes many messages in parallel. A client disconnect stops the
// remaining messages from being dispatched
func (h *handler) Batch(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processBatchRequest(c)
	if err != nil {
		h.l.Debug("Rejected batch request", zap.Error(err))
		h.fail(c, err)
		return
	}

	outcomes, err := h.runner.Run(ctx, req.Texts)
	if err != nil {
		h.l.Warn("Batch interrupted", zap.Error(err))
	}
	ok(c, h.newBatchResp(outcomes, err != nil))
}

// Health reports liveness
func (h *handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
