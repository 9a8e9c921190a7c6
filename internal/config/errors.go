package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormengine names an unsupported database.
	ErrUnknownGormEngine = errors.New("config db.gormengine must be one of sqlite, mysql, postgres")

	// ErrUnknownStorageBackend error if config storage.backend names an unsupported object store.
	ErrUnknownStorageBackend = errors.New("config storage.backend must be one of local, s3, gcs")

	// ErrUnknownSessionBackend error if config webserver.session.backend is not supported.
	ErrUnknownSessionBackend = errors.New("config webserver.session.backend must be one of db, redis, memory")
)
