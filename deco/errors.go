package deco

import "errors"

// ErrNoSegments is returned by Plan when called with an empty segment list;
// there is nothing to plan a profile for.
var ErrNoSegments = errors.New("deco: at least one segment is required to calculate a profile")
