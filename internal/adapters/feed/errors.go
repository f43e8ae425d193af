package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrEmptyFeed   = errors.New("empty feed body")
	ErrParseFailed = errors.New("feed parse failed")
	ErrFetchFailed = errors.New("feed fetch failed")
)
