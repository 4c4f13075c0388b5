package config

import "errors"

var ErrInvalidConfig = errors.New("invalid client config")
