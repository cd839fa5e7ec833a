package domain

import "errors"

var (
	ErrDumpFailed   = errors.New("dump failed")
	ErrUploadFailed = errors.New("upload failed")
	ErrInvalidName  = errors.New("not a backup file name")
	ErrNoRemote     = errors.New("no remote storage configured")
)
