package services

import "errors"

var (
	// ErrInvalidFileType is returned for uploads that are neither CSV nor XLSX
	ErrInvalidFileType = errors.New("invalid file type: expected .csv or .xlsx")

	// ErrEmptyUpload is returned when an upload carries no bytes
	ErrEmptyUpload = errors.New("uploaded file is empty")
)
