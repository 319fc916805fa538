package main

import (
	"errors"

	"cardgen/internal/differ"
	"cardgen/internal/project"
	"cardgen/internal/source"
)

const (
	exitOK      = 0
	exitPartial = 1 // часть файлов не разобрана
	exitConfig  = 2 // неверные корни, флаги или конфиг
)

// exitError carries an explicit exit code. silent errors were already
// reported and are not printed again.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitConfig, err: err}
}

var errPartial = errors.New("some files could not be analyzed")

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var cfgErr *project.ConfigError
	var loadErr *source.LoadError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &loadErr), errors.Is(err, differ.ErrSameVersion):
		return exitConfig
	}
	return exitPartial
}

func isSilent(err error) bool {
	var ee *exitError
	return errors.As(err, &ee) && ee.silent
}
