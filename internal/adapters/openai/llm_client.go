package openai

import (
	"context"
	"fmt"

	"github.com/mikey/spam-insight/internal/adapters/llm"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the Classifier interface using OpenAI
type OpenAIClient struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	threshold     float64
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewOpenAIClient creates a new OpenAI classifier
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	threshold float64,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		threshold:     threshold,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Name returns the configured model name
func (c *OpenAIClient) Name() string {
	return "openai:" + c.modelName
}

// Classify asks the chat completion API for the spam probability of a message
func (c *OpenAIClient) Classify(ctx context.Context, req *core.ClassificationRequest) (*core.Prediction, error) {
	body := c.textProcessor.TruncateForPrompt(req.Raw, c.maxBodySize)

	chatReq := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: llm.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: llm.BuildPrompt(body),
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	prediction, err := llm.Classify(resp.Choices[0].Message.Content, c.threshold, c.Name())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("OpenAI classification",
		zap.String("request_id", resp.ID),
		zap.String("label", prediction.Label),
		zap.Float64("spam_probability", prediction.SpamProbability()))

	return prediction, nil
}
