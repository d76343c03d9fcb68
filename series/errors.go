// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig reports an invalid series configuration, such as a bad
	// option value, a mismatched number of ranges, or an unbound symbol.
	ErrConfig = errors.New("invalid series configuration")

	// ErrUnsupported reports an input the series kind cannot represent,
	// such as an opaque function where an expression is required.
	ErrUnsupported = errors.New("unsupported input")

	// ErrDomain reports a discretization domain the series cannot
	// sample, such as a log-scaled range that crosses zero.
	ErrDomain = errors.New("invalid domain")
)

func configErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

func unsupportedErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}

func domainErrf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDomain, fmt.Sprintf(format, args...))
}
