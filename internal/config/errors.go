package config

import "errors"

var (
	ErrInvalidAuthConfigs    = errors.New("invalid auth configs")
	ErrInvalidStorageConfigs = errors.New("invalid storage configs")
	ErrInvalidServerConfigs  = errors.New("invalid server configs")
	ErrInvalidWorkerConfigs  = errors.New("invalid worker configs")
)
