package models

import "errors"

const MIMETypeJPEG = "image/jpeg"

var (
	ErrNoFile       = errors.New("no file uploaded")
	ErrFileTooLarge = errors.New("file too large")
	ErrEmptyResult  = errors.New("model returned no text")
)

// Image is the uploaded photo, held in memory for the lifetime of one request.
type Image struct {
	Data     []byte
	Filename string
	MIMEType string
}

// UploadResponse is returned by /api/upload on success.
type UploadResponse struct {
	Result string `json:"result" example:"🐱: [快给我开罐头！]"`
}

// ErrorResponse is returned by /api/upload on any failure.
type ErrorResponse struct {
	Error string `json:"error" example:"No file uploaded."`
}
