package common

import (
	"errors"
)

var ErrNothingToExport = errors.New("nothing to export")
var ErrAllItemsFailed = errors.New("all items failed to export")
var ErrNotFound = errors.New("not found")
var ErrArchiveTooLarge = errors.New("archive too large")
