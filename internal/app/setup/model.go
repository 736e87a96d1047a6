package setup

// Result tells the client where to go after sign-in. Redirect is nil when the profile has no server yet.
type Result struct {
	Redirect *string `json:"redirect"`
	ServerID string  `json:"server_id,omitempty"`
	Message  string  `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
