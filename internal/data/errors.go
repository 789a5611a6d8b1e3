package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrTableNameRequired is returned when a repository is built without a table name.
	ErrTableNameRequired = errors.New("dynamodb table name is required")
	// ErrIndexNameRequired is returned when a repository is built without the unprocessed index name.
	ErrIndexNameRequired = errors.New("dynamodb unprocessed index name is required")
	// ErrClientRequired is returned when a repository is built without a store client.
	ErrClientRequired = errors.New("dynamodb client is required")
	// ErrRedisClientRequired is returned when a Redis-backed repository is built without a client.
	ErrRedisClientRequired = errors.New("redis client is required")
	// ErrKeyRequired is returned for empty Redis keys.
	ErrKeyRequired = errors.New("key cannot be empty")
)
