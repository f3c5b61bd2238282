package service

import (
	"errors"

	"github.com/jengzang/evjourney-backend-go/internal/ingest"
	"github.com/jengzang/evjourney-backend-go/internal/session"
)

// Service errors mapped to HTTP status codes by the handlers
var (
	ErrSessionNotFound     = session.ErrNotFound
	ErrInvalidSessionToken = session.ErrInvalidToken
	ErrUnsupportedFormat   = ingest.ErrUnsupportedFormat
	ErrDecode              = ingest.ErrDecode
	ErrEmptyUpload         = errors.New("uploaded file contains no rows")
	ErrNoValidTrips        = errors.New("no trips with a positive distance found")
	ErrUnknownChart        = errors.New("unknown chart")
)
