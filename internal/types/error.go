package types

import "errors"

var ErrNotFound = errors.New("not found")
var ErrDuplicatePhone = errors.New("phone number already registered")
