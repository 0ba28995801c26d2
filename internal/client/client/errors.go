package client

import "errors"

var ErrLocalDataNotAvailable = errors.New("local data unavailable")
