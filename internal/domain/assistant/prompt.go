package assistant

import (
	"encoding/json"
	"fmt"
	"time"
)

const promptTemplate = `You are an AI booking assistant for a student hostel.

You receive:
- context: the fields extracted so far (intent, serviceType, date, time, instructions)
- user_message: the newest thing the user said

Update the fields using the user message.

Rules:
- Today is %s. Resolve relative days such as "today", "tomorrow" or "next Monday" to a date written like "2025-07-14".
- intent is lowercase and one of: "book", "cancel", "reschedule", "info", "other".
- serviceType is one of: "laundry", "room cleaning", "study space", "room repairs", "tech support".
- booked is true only when both date and time are set.
- completed_service is always false.

Reply with one JSON object and nothing else:
{
  "response": "...",
  "intent": "...",
  "serviceType": "...",
  "date": "...",
  "time": "...",
  "instructions": "...",
  "booked": false,
  "completed_service": false
}

context:
%s

user_message: %s
`

func buildPrompt(userMessage string, previous map[string]any, now time.Time) (string, error) {
	if previous == nil {
		previous = map[string]any{}
	}
	state, err := json.Marshal(previous)
	if err != nil {
		return "", fmt.Errorf("encode previous state: %w", err)
	}
	msg, err := json.Marshal(userMessage)
	if err != nil {
		return "", fmt.Errorf("encode user message: %w", err)
	}
	return fmt.Sprintf(promptTemplate, now.Format("2006-01-02"), state, msg), nil
}
