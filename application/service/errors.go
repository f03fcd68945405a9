package service

import "errors"

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("csvsplit: client is closed")

// ErrHistoryDisabled indicates run history was requested but no store is configured.
var ErrHistoryDisabled = errors.New("csvsplit: run history is disabled")
