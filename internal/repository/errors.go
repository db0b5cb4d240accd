package repository

import "errors"

var ErrDuplicateID = errors.New("duplicate id")
