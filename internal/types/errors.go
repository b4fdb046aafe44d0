package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConfig   = errors.New("invalid configuration")
	ErrEncoding = errors.New("unsupported character encoding")

	ErrArtifactTimeout = errors.New("artifact not available")
	ErrKeyNotFound     = errors.New("key not found")
	ErrAlreadyCurrent  = errors.New("value already current")
	ErrVCS             = errors.New("version control error")
	ErrHosting         = errors.New("code hosting error")

	ErrInvalidBackend  = errors.New("invalid backend")
	ErrDataStoreAccess = errors.New("data store read/write error")
)

func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}
