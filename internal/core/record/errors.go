// Package record defines domain-specific errors
package record

import "errors"

var (
	ErrNilRecord       = errors.New("record cannot be nil")
	ErrInvalidRecordID = errors.New("invalid record ID")
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record ID")
)
