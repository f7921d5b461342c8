package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects a known message kind; Data carries its variables.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
