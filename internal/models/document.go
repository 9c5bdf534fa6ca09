// Package models defines the request and response payloads shared by the HTTP
// API and the CLI.
package models

// UploadedDocument is a file received from a client. Name is the client's
// filename and is only echoed back; it never becomes a path on disk.
type UploadedDocument struct {
	Name string
	Size int64
}
