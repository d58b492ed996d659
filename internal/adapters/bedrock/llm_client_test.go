package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/utils"
	"go.uber.org/zap"
)

type fakeInvoker struct {
	body    []byte
	err     error
	payload map[string]interface{}
}

func (f *fakeInvoker) InvokeModel(_ context.Context, in *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	if err := json.Unmarshal(in.Body, &f.payload); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: f.body}, nil
}

func newTestClient(inv ModelInvoker, modelID string) *BedrockClient {
	logger := zap.NewNop()
	return NewBedrockClient(inv, modelID, 100, 0.1, 0.9, 16, 0.5, logger, utils.NewTextProcessor(logger))
}

func TestClassifyClaude(t *testing.T) {
	inv := &fakeInvoker{body: []byte(`{"completion": " {\"spam_probability\": 0.93}"}`)}
	c := newTestClient(inv, "anthropic.claude-v2")

	p, err := c.Classify(context.Background(), &core.ClassificationRequest{Raw: "WIN a FREE cruise, reply now to claim"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if p.Label != core.LabelSpam || p.SpamProbability() != 0.93 {
		t.Errorf("got %+v", p)
	}
	if p.ModelUsed != "bedrock:anthropic.claude-v2" {
		t.Errorf("model: got %q", p.ModelUsed)
	}
	prompt, _ := inv.payload["prompt"].(string)
	if !strings.Contains(prompt, "WIN a FREE cruis") || strings.Contains(prompt, "claim") {
		t.Errorf("prompt should carry the truncated message, got %q", prompt)
	}
}

func TestClassifyTitan(t *testing.T) {
	inv := &fakeInvoker{body: []byte(`{"results": [{"outputText": "{\"spam_probability\": 0.1}"}]}`)}
	c := newTestClient(inv, "amazon.titan-text-express-v1")

	p, err := c.Classify(context.Background(), &core.ClassificationRequest{Raw: "lunch?"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if p.Label != core.LabelHam {
		t.Errorf("label: got %q, want ham", p.Label)
	}
	if _, ok := inv.payload["textGenerationConfig"]; !ok {
		t.Error("titan payload should carry textGenerationConfig")
	}
}

func TestClassifyInvokeError(t *testing.T) {
	boom := errors.New("throttled")
	c := newTestClient(&fakeInvoker{err: boom}, "meta.llama3")

	if _, err := c.Classify(context.Background(), &core.ClassificationRequest{Raw: "x"}); !errors.Is(err, boom) {
		t.Errorf("got %v, want wrapped %v", err, boom)
	}
}
