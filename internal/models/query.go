package models

import "errors"

// Validation messages returned to clients with a 400.
const (
	MsgUploadInvalid = "PDF file or question not provided"
	MsgScrapeInvalid = "URL or question not provided"
)

// ErrScrapeInvalid reports a scrape request without a URL or question.
var ErrScrapeInvalid = errors.New(MsgScrapeInvalid)

// ScrapeRequest is the JSON body of POST /scrape.
type ScrapeRequest struct {
	URL      string `json:"url"`
	Question string `json:"question"`
}

// Validate rejects requests where either field is empty.
func (q *ScrapeRequest) Validate() error {
	if q.URL == "" || q.Question == "" {
		return ErrScrapeInvalid
	}
	return nil
}
