// Package llm holds the prompt and response handling shared by the LLM-backed
// classifiers
package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mikey/spam-insight/internal/core"
)

// DefaultThreshold is used when no positive threshold is configured
const DefaultThreshold = 0.5

// SystemPrompt is sent as the system role where the provider supports one
const SystemPrompt = "You are a spam detection system. Respond only with JSON."

// ErrNoJSON is returned when a response holds no JSON object
var ErrNoJSON = errors.New("no JSON object in LLM response")

const promptFormat = `You are a spam detection system. Classify the following message as spam or ham.
Respond with a JSON object containing:
- spam_probability: number between 0 and 1 (higher means more likely to be spam)
- explanation: string (brief explanation of the verdict)

Message:
%s

Respond only with the JSON object and nothing else.`

// Response is the structured answer expected from the model. Score and IsSpam
// are accepted as fallbacks when spam_probability is missing
type Response struct {
	SpamProbability *float64 `json:"spam_probability"`
	Score           *float64 `json:"score"`
	IsSpam          *bool    `json:"is_spam"`
	Explanation     string   `json:"explanation"`
}

// BuildPrompt formats the classification prompt for text
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptFormat, text)
}

// ParseResponse decodes the model answer, extracting the outermost JSON
// object when the model wrapped it in prose or code fences
func ParseResponse(text string) (*Response, error) {
	var resp Response
	if err := json.Unmarshal([]byte(text), &resp); err == nil {
		return &resp, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSON
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	return &resp, nil
}

// ToPrediction converts a response into a prediction. The label is spam when
// the spam probability reaches threshold
func ToPrediction(resp *Response, threshold float64, model string) *core.Prediction {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var p float64
	switch {
	case resp.SpamProbability != nil:
		p = *resp.SpamProbability
	case resp.Score != nil:
		p = *resp.Score
	case resp.IsSpam != nil && *resp.IsSpam:
		p = 1
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	label := core.LabelHam
	if p >= threshold {
		label = core.LabelSpam
	}
	return &core.Prediction{
		Label:         label,
		Probabilities: [2]float64{1 - p, p},
		ModelUsed:     model,
	}
}

// Classify parses text and converts it in one step
func Classify(text string, threshold float64, model string) (*core.Prediction, error) {
	resp, err := ParseResponse(text)
	if err != nil {
		return nil, err
	}
	return ToPrediction(resp, threshold, model), nil
}
