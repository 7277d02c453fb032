package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/hray3182/RemindSnap/internal/models"
)

// ErrExtraction marks any failure on the photo-to-reminder path: the API
// call, an empty completion, unparseable JSON, or a bad timestamp. Callers
// must not persist anything when they see it.
var ErrExtraction = errors.New("reminder extraction failed")

type Client struct {
	client *openai.Client
	model  string
}

func New(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *Client) SetModel(model string) {
	c.model = model
}

// draft is the shape the model is instructed to answer with.
type draft struct {
	Message  string `json:"reminderMsg"`
	RemindAt string `json:"remindAt"`
}

const promptTemplate = `The attached photo contains a handwritten reminder: a short text and a date and/or time.
Today is %s.

Identify the reminder text and when it is due. If the year is missing, assume the current year. If the time of day is missing, assume 09:00.

Respond with JSON only, no explanation:
{"reminderMsg": "<the reminder text>", "remindAt": "<ISO-8601 timestamp>"}`

func prompt(now time.Time) string {
	return fmt.Sprintf(promptTemplate, now.Format("Monday, 2006-01-02"))
}

// ExtractReminder submits a photo of a handwritten note to the vision model
// and returns the candidate reminder. The result is not persisted; the
// client echoes it back through the regular create endpoint.
func (c *Client) ExtractReminder(ctx context.Context, image []byte, mimeType string) (*models.Reminder, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt(time.Now()),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		MaxTokens:   256,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response from model", ErrExtraction)
	}

	return parseDraft(resp.Choices[0].Message.Content)
}

// parseDraft turns the model's textual answer into a reminder. Models often
// wrap JSON answers in Markdown code fences, so those are stripped first.
func parseDraft(content string) (*models.Reminder, error) {
	content = StripCodeFence(content)

	var d draft
	if err := json.Unmarshal([]byte(content), &d); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrExtraction, err)
	}

	if strings.TrimSpace(d.Message) == "" {
		return nil, fmt.Errorf("%w: no reminder text in response", ErrExtraction)
	}

	remindAt, err := parseTimestamp(d.RemindAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	return &models.Reminder{
		Message:  strings.TrimSpace(d.Message),
		RemindAt: remindAt,
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

// StripCodeFence removes a surrounding Markdown code fence, with or without
// a language tag, from a model response.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "json" on the opening fence line
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine != "" && !strings.ContainsAny(firstLine, "{[") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
