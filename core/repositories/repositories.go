// Package repositories holds what the entity repositories share.
package repositories

import "errors"

// ErrNotFound is returned by stores and repositories when no row has the
// requested id.
var ErrNotFound = errors.New("record not found")
