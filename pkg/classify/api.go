package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/ledger-labs/statements-processor/pkg/diag"
	"github.com/ledger-labs/statements-processor/pkg/money"
	"github.com/ledger-labs/statements-processor/pkg/request"
	"github.com/ledger-labs/statements-processor/pkg/statement"
	"github.com/ledger-labs/statements-processor/pkg/version"
)

var logger = diag.CreateLogger()

var userAgent = version.AppName + "/" + version.Version

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"

	completionsPath = "/v1/chat/completions"

	// Account labels are short, no reason to allow longer completions
	maxCompletionTokens = 32
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiClassifier struct {
	baseURL string
	apiKey  string
	model   string
}

func classificationPrompt(trx statement.Transaction) string {
	return fmt.Sprintf(
		"Date: %v, Description: %v, Amount: %v. Classify into a single GL account.",
		trx.Date.Format("2006-01-02"), trx.Description, money.FormatAmount(trx.Amount),
	)
}

func (c *apiClassifier) Classify(ctx context.Context, trx statement.Transaction) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: classificationPrompt(trx)}},
		Temperature: 0,
		MaxTokens:   maxCompletionTokens,
	})
	if err != nil {
		return "", newClassifierError(err)
	}

	req := request.Post(c.baseURL+completionsPath, "application/json", bytes.NewReader(payload)).
		WithHeader("Authorization", "Bearer "+c.apiKey).
		WithHeader("User-Agent", userAgent)

	var completion chatResponse
	if err := request.Do(ctx, req).DecodeJSON(&completion); err != nil {
		return "", newClassifierError(err)
	}
	if len(completion.Choices) == 0 {
		return "", newClassifierError(errors.New("no completion choices"))
	}

	account := strings.TrimSpace(completion.Choices[0].Message.Content)
	logger.Debug(ctx, "Classified %q as %q", trx.Description, account)
	return account, nil
}

// APIClassifierOpt is an api classifier option
type APIClassifierOpt func(c *apiClassifier)

// WithBaseURL sets an api base url
func WithBaseURL(baseURL string) APIClassifierOpt {
	return func(c *apiClassifier) {
		c.baseURL = baseURL
	}
}

// WithAPIKey sets an api key used as a bearer token
func WithAPIKey(apiKey string) APIClassifierOpt {
	return func(c *apiClassifier) {
		c.apiKey = apiKey
	}
}

// WithModel sets a completion model
func WithModel(model string) APIClassifierOpt {
	return func(c *apiClassifier) {
		c.model = model
	}
}

// NewAPIClassifier creates a classifier backed by a chat completions API
func NewAPIClassifier(opts ...APIClassifierOpt) Classifier {
	classifier := &apiClassifier{
		baseURL: defaultBaseURL,
		model:   defaultModel,
	}
	for _, opt := range opts {
		opt(classifier)
	}
	return classifier
}
