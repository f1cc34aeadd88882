package consensus

import "errors"

var errInvalidPadding = errors.New("invalid payload padding")
