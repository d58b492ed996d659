package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/spam-insight/internal/adapters/llm"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient is an implementation of the Classifier interface using Google Gemini
type GeminiClient struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	threshold     float64
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiClient creates a new Gemini classifier
func NewGeminiClient(
	ctx context.Context,
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	threshold float64,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(llm.SystemPrompt))

	return &GeminiClient{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		threshold:     threshold,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Name returns the configured model name
func (c *GeminiClient) Name() string {
	return "gemini:" + c.modelName
}

// Classify asks Gemini for the spam probability of a message
func (c *GeminiClient) Classify(ctx context.Context, req *core.ClassificationRequest) (*core.Prediction, error) {
	body := c.textProcessor.TruncateForPrompt(req.Raw, c.maxBodySize)

	resp, err := c.model.GenerateContent(ctx, genai.Text(llm.BuildPrompt(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	prediction, err := llm.Classify(text.String(), c.threshold, c.Name())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Gemini classification",
		zap.String("label", prediction.Label),
		zap.Float64("spam_probability", prediction.SpamProbability()))

	return prediction, nil
}
