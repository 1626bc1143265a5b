// services/advisor.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrAdvisorUnavailable covers every advisor failure mode: transport
// errors, bad status, undecodable output. The caller reports it and leaves
// no suggestion applied; there is no retry.
var ErrAdvisorUnavailable = errors.New("reorder advisor unavailable")

// ReorderSuggestionInput is the advisor boundary input schema.
type ReorderSuggestionInput struct {
	ProductID         string  `json:"productId"`
	VariantID         string  `json:"variantId"`
	ProductName       string  `json:"productName"`
	VariantDetails    string  `json:"variantDetails"`
	QuantityInStock   int     `json:"quantityInStock"`
	LowStockThreshold int     `json:"lowStockThreshold"`
	AverageDailySales float64 `json:"averageDailySales"`
	LeadTimeDays      int     `json:"leadTimeDays"`
}

// ReorderSuggestion is the advisor boundary output schema.
type ReorderSuggestion struct {
	ReorderQuantity int    `json:"reorderQuantity"`
	Reasoning       string `json:"reasoning"`
}

// ReorderAdvisor suggests restock quantities for a variant. The call may
// be slow; it must honor ctx so a superseding request can cancel it.
type ReorderAdvisor interface {
	SuggestReorder(ctx context.Context, input ReorderSuggestionInput) (*ReorderSuggestion, error)
}

// HTTPReorderAdvisor talks to an OpenAI-compatible chat-completions
// endpoint and asks the model for a JSON suggestion.
type HTTPReorderAdvisor struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

func NewReorderAdvisor(baseURL, apiKey, model string) *HTTPReorderAdvisor {
	return &HTTPReorderAdvisor{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const advisorSystemPrompt = `You are an inventory management expert, providing reorder suggestions for building materials. ` +
	`Consider the lead time, current stock level, low stock threshold, and average daily sales to determine the reorder quantity. ` +
	`Never suggest ordering less than 1. ` +
	`Reply with a JSON object of the form {"reorderQuantity": <integer>, "reasoning": "<text>"} and nothing else.`

func (a *HTTPReorderAdvisor) SuggestReorder(ctx context.Context, input ReorderSuggestionInput) (*ReorderSuggestion, error) {
	userPrompt := fmt.Sprintf(
		"Product Name: %s\nVariant Details: %s\nCurrent Quantity in Stock: %d\nLow Stock Threshold: %d\nAverage Daily Sales (past month): %g\nLead Time (days): %d",
		input.ProductName, input.VariantDetails, input.QuantityInStock,
		input.LowStockThreshold, input.AverageDailySales, input.LeadTimeDays,
	)

	payload := chatRequest{
		Model: a.Model,
		Messages: []chatMessage{
			{Role: "system", Content: advisorSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	payload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: advisor returned status %d", ErrAdvisorUnavailable, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrAdvisorUnavailable)
	}

	var suggestion ReorderSuggestion
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &suggestion); err != nil {
		return nil, fmt.Errorf("%w: undecodable suggestion: %v", ErrAdvisorUnavailable, err)
	}

	// The store is not closing; a suggestion below one unit is never valid.
	if suggestion.ReorderQuantity < 1 {
		suggestion.ReorderQuantity = 1
	}
	return &suggestion, nil
}
