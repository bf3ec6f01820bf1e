package domain

import "errors"

// ErrConfiguration reports a dataset or configuration problem that prevents the
// corpus from being built. It is always fatal at startup.
var ErrConfiguration = errors.New("configuration error")
