/*
 * errors.go, part of mdbin.
 *
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chem

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every Error unwraps to one of these, so they can be tested with errors.Is.
var (
	// ErrConfig signals a configuration problem, detected before or while building a run.
	ErrConfig = errors.New("configuration error")
	// ErrFrame signals a computational problem while processing a frame. It is fatal for the frame.
	ErrFrame = errors.New("frame error")
	// ErrOutsideBins signals values that fell outside all bins. Only returned when asked for.
	ErrOutsideBins = errors.New("values outside bins")
	// ErrFormat signals a malformed trajectory or results file.
	ErrFormat = errors.New("format error")
)

// Error is the error type of this module.
type Error struct {
	kind    error
	message string
	deco    []string
}

// Error returns the error message, prefixed with the function that produced the error.
func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return fmt.Sprintf("%s: %s", strings.Join(err.deco, ": "), err.message)
}

// Decorate adds dec to the decoration slice of the error, and returns the resulting slice.
// The slice is kept from the outermost caller to the innermost.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append([]string{dec}, err.deco...)
	return err.deco
}

// Unwrap returns the kind of the error.
func (err *Error) Unwrap() error { return err.kind }

func newError(kind error, caller, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), deco: []string{caller}}
}

// NewConfigError returns an ErrConfig-kind error produced by caller.
func NewConfigError(caller, format string, args ...interface{}) error {
	return newError(ErrConfig, caller, format, args...)
}

// NewFrameError returns an ErrFrame-kind error produced by caller.
func NewFrameError(caller, format string, args ...interface{}) error {
	return newError(ErrFrame, caller, format, args...)
}

// NewOutsideBinsError returns an ErrOutsideBins-kind error produced by caller.
func NewOutsideBinsError(caller, format string, args ...interface{}) error {
	return newError(ErrOutsideBins, caller, format, args...)
}

// NewFormatError returns an ErrFormat-kind error produced by caller.
func NewFormatError(caller, format string, args ...interface{}) error {
	return newError(ErrFormat, caller, format, args...)
}

// ErrDecorate decorates err with caller if it implements Decorator, and wraps it
// with caller otherwise. A nil error is returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if d, ok := err.(Decorator); ok {
		d.Decorate(caller)
		return d
	}
	return fmt.Errorf("%s: %w", caller, err)
}

type lastFrameError struct {
	fileName string
	deco     []string
}

// NewLastFrameError returns the error readers use to signal the normal end of a trajectory.
func NewLastFrameError(fileName, caller string) LastFrameError {
	return &lastFrameError{fileName: fileName, deco: []string{caller}}
}

func (err *lastFrameError) Error() string { return "EOF" }

func (err *lastFrameError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append([]string{dec}, err.deco...)
	return err.deco
}

func (err *lastFrameError) FileName() string { return err.fileName }

func (err *lastFrameError) NormalLastFrameTermination() {}

// IsLastFrame returns true if err, or an error it wraps, is a LastFrameError.
func IsLastFrame(err error) bool {
	var lf LastFrameError
	return errors.As(err, &lf)
}
