package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrEmptyMessage = errors.New("no user message received")
	ErrUpstream     = errors.New("chat model failed")
	errNoModel      = errors.New("chat model not configured")
)

const fallbackResponse = "Sorry, something went wrong. Please try again."

// requiredFields must be present in every reply; the booleans default to
// false, the rest to null.
var requiredFields = []string{
	"response", "intent", "serviceType", "date", "time", "instructions", "booked", "completed_service",
}

func isBoolField(name string) bool {
	return name == "booked" || name == "completed_service"
}

// Reply is the normalized extraction result sent back to the client.
type Reply map[string]any

// Fallback is returned whenever the model cannot produce a usable reply.
func Fallback() Reply {
	r := Reply{"response": fallbackResponse}
	for _, f := range requiredFields[1:] {
		if isBoolField(f) {
			r[f] = false
		} else {
			r[f] = nil
		}
	}
	return r
}

// Extractor is stateless: all conversation state travels in previous.
type Extractor struct {
	model   Model
	timeout time.Duration
	now     func() time.Time
	log     *zap.Logger
}

func NewExtractor(model Model, timeout time.Duration, now func() time.Time, log *zap.Logger) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{model: model, timeout: timeout, now: now, log: log}
}

// Handle sends one turn to the model. On any model or parse failure it
// returns Fallback together with ErrUpstream; there is no retry.
func (e *Extractor) Handle(ctx context.Context, userMessage string, previous map[string]any) (Reply, error) {
	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return nil, ErrEmptyMessage
	}

	if e.model == nil {
		return Fallback(), fmt.Errorf("%w: %v", ErrUpstream, errNoModel)
	}

	prompt, err := buildPrompt(userMessage, previous, e.now())
	if err != nil {
		return Fallback(), fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.model.Generate(ctx, prompt)
	if err != nil {
		e.log.Warn("chat model call failed", zap.Error(err))
		return Fallback(), fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	reply, err := parseReply(raw)
	if err != nil {
		e.log.Warn("chat model reply unparsable", zap.Error(err), zap.Int("reply_len", len(raw)))
		return Fallback(), fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return reply, nil
}

func parseReply(raw string) (Reply, error) {
	var reply Reply
	if err := json.Unmarshal([]byte(stripFences(raw)), &reply); err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, errors.New("reply is not a JSON object")
	}

	for _, f := range requiredFields {
		if _, ok := reply[f]; ok {
			continue
		}
		if isBoolField(f) {
			reply[f] = false
		} else {
			reply[f] = nil
		}
	}
	return reply, nil
}

// stripFences removes a ```json ... ``` wrapper some models add.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
