package notify

// NotificationResult is the response envelope of the notify routes.
type NotificationResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

func Sent(messageID string) NotificationResult {
	return NotificationResult{Success: true, MessageID: messageID, Message: MsgSent}
}

func Failed(msg string) NotificationResult {
	return NotificationResult{Success: false, Error: msg}
}
