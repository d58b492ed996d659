package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikey/spam-insight/internal/annotate"
	"github.com/mikey/spam-insight/internal/batch"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/explain"
	"github.com/mikey/spam-insight/internal/features"
	"github.com/mikey/spam-insight/internal/patterns"
)

// =====================================================
// Request DTOs
// =====================================================

type analyzeReq struct {
	Text     string `json:"text"`
	Renderer string `json:"renderer,omitempty"`
}

type annotateReq struct {
	Text     string `json:"text"`
	Renderer string `json:"renderer,omitempty"`
}

type batchReq struct {
	Texts []string `json:"texts"`
}

// =====================================================
// Response DTOs
// =====================================================

// resp is the envelope of every API response
type resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

type analyzeResp struct {
	ProcessingID    string                   `json:"processing_id"`
	Label           string                   `json:"label"`
	SpamProbability float64                  `json:"spam_probability"`
	ModelUsed       string                   `json:"model_used"`
	Cached          bool                     `json:"cached"`
	Truncated       bool                     `json:"truncated"`
	NormalizedText  string                   `json:"normalized_text"`
	Features        features.MessageFeatures `json:"features"`
	Patterns        patterns.Report          `json:"patterns"`
	Explanation     explain.Explanation      `json:"explanation"`
	Annotated       string                   `json:"annotated"`
	AnalyzedAt      time.Time                `json:"analyzed_at"`
}

type annotateResp struct {
	Segments  []annotate.Segment `json:"segments"`
	Annotated string             `json:"annotated"`
	SpamWords int                `json:"spam_words"`
	HamWords  int                `json:"ham_words"`
}

type batchResp struct {
	Summary     batch.Summary      `json:"summary"`
	Interrupted bool               `json:"interrupted"`
	Results     []batchOutcomeResp `json:"results"`
}

type batchOutcomeResp struct {
	Index           int     `json:"index"`
	Status          string  `json:"status"`
	Label           string  `json:"label,omitempty"`
	SpamProbability float64 `json:"spam_probability,omitempty"`
	SpamIndicators  int     `json:"spam_indicators,omitempty"`
	HamIndicators   int     `json:"ham_indicators,omitempty"`
	Error           string  `json:"error,omitempty"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, resp{ErrorCode: 0, Message: "Success", Data: data})
}

// apiRenderer picks the renderer for an API response; the API defaults to
// plain markers rather than terminal colours
func apiRenderer(name string) (annotate.Renderer, error) {
	if name == "" {
		name = annotate.RendererPlain
	}
	return annotate.NewRenderer(name)
}

func (h *handler) newAnalyzeResp(r *core.AnalysisResult, renderer string) (analyzeResp, error) {
	rd, err := apiRenderer(renderer)
	if err != nil {
		return analyzeResp{}, err
	}
	return analyzeResp{
		ProcessingID:    r.ProcessingID,
		Label:           r.Prediction.Label,
		SpamProbability: r.Prediction.SpamProbability(),
		ModelUsed:       r.Prediction.ModelUsed,
		Cached:          r.Cached,
		Truncated:       r.Truncated,
		NormalizedText:  r.Normalized.Text,
		Features:        r.Features,
		Patterns:        r.Report,
		Explanation:     r.Explanation,
		Annotated:       rd.Render(r.Annotation),
		AnalyzedAt:      r.AnalyzedAt,
	}, nil
}

func (h *handler) newAnnotateResp(m annotate.Message, renderer string) (annotateResp, error) {
	rd, err := apiRenderer(renderer)
	if err != nil {
		return annotateResp{}, err
	}
	return annotateResp{
		Segments:  m.Segments,
		Annotated: rd.Render(m),
		SpamWords: m.Count(annotate.TagSpam),
		HamWords:  m.Count(annotate.TagHam),
	}, nil
}

func (h *handler) newBatchResp(outcomes []batch.Outcome, interrupted bool) batchResp {
	results := make([]batchOutcomeResp, 0, len(outcomes))
	for _, o := range outcomes {
		item := batchOutcomeResp{Index: o.Index, Status: o.Status, Error: o.Error}
		if o.Result != nil {
			item.Label = o.Result.Prediction.Label
			item.SpamProbability = o.Result.Prediction.SpamProbability()
			item.SpamIndicators = o.Result.Report.SpamIndicators
			item.HamIndicators = o.Result.Report.HamIndicators
		}
		results = append(results, item)
	}
	return batchResp{
		Summary:     batch.Summarize(outcomes),
		Interrupted: interrupted,
		Results:     results,
	}
}
