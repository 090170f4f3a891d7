package app

import "errors"

var errNoFetcher = errors.New("no book fetcher configured")
