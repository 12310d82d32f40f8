package codec

import "errors"

var errInvalidHashLength = errors.New("codec: hash must be 32 bytes")
