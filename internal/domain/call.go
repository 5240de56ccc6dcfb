package domain

// CallStatus enumerates the provider-side lifecycle stages of a call. The gateway
// observes these passively through status callbacks; it never drives transitions.
type CallStatus string

const (
	CallStatusQueued     CallStatus = "queued"
	CallStatusRinging    CallStatus = "ringing"
	CallStatusInProgress CallStatus = "in-progress"
	CallStatusCompleted  CallStatus = "completed"
	CallStatusBusy       CallStatus = "busy"
	CallStatusNoAnswer   CallStatus = "no-answer"
	CallStatusFailed     CallStatus = "failed"
)

// CallRequest describes one outbound call to place. Built per incoming HTTP
// request and discarded once the provider acknowledges or rejects it.
type CallRequest struct {
	To       string
	Message  string
	CallerID string
}

// CallReceipt echoes the provider's acknowledgement of a placed call.
type CallReceipt struct {
	SID    string     `json:"call_sid"`
	To     string     `json:"to"`
	From   string     `json:"from"`
	Status CallStatus `json:"status"`
}

// MessageRequest describes one outbound SMS.
type MessageRequest struct {
	To       string
	Body     string
	CallerID string
}

// MessageReceipt echoes the provider's acknowledgement of a sent message.
type MessageReceipt struct {
	SID    string `json:"message_sid"`
	To     string `json:"to"`
	From   string `json:"from"`
	Status string `json:"status"`
}
