package models

// UploadAnswer is the success body of POST /upload.
type UploadAnswer struct {
	FileName string `json:"file_name"`
	Answer   string `json:"answer"`
}

// ScrapeAnswer is the success body of POST /scrape.
type ScrapeAnswer struct {
	URL    string `json:"url"`
	Answer string `json:"answer"`
}

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Model           string `json:"model"`
	CompletionURL   string `json:"completion_base_url"`
	UploadDir       string `json:"upload_dir"`
	UploadDirBytes  int64  `json:"upload_dir_bytes"`
	MaxContextChars int    `json:"max_context_chars"`
}
