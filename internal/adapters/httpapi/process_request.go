package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikey/spam-insight/internal/core"
)

func (h *handler) processAnalyzeRequest(c *gin.Context) (analyzeReq, error) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, errInvalidBody
	}
	if strings.TrimSpace(req.Text) == "" {
		return req, core.ErrEmptyMessage
	}
	return req, nil
}

func (h *handler) processAnnotateRequest(c *gin.Context) (annotateReq, error) {
	var req annotateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, errInvalidBody
	}
	if strings.TrimSpace(req.Text) == "" {
		return req, core.ErrEmptyMessage
	}
	return req, nil
}

func (h *handler) processBatchRequest(c *gin.Context) (batchReq, error) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, errInvalidBody
	}
	if len(req.Texts) == 0 {
		return req, core.ErrEmptyMessage
	}
	if len(req.Texts) > MaxBatchSize {
		return req, errBatchTooLarge
	}
	return req, nil
}
