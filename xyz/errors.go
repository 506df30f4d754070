// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "errors"

// Error categories returned and logged by [Engine] operations.
// They are wrapped with context using fmt.Errorf and %w, so
// callers match them with errors.Is.
var (
	// ErrUserInput is an invalid argument from the user, such as an
	// unknown axis name or an object name that does not resolve.
	// The operation is a no-op.
	ErrUserInput = errors.New("invalid user input")

	// ErrAsset is malformed mesh content or an unreachable path.
	// The named registry slot is never populated.
	ErrAsset = errors.New("asset error")

	// ErrTypeMismatch is an operation applied to a node whose
	// kind or material kind does not support it. The node is skipped.
	ErrTypeMismatch = errors.New("node type mismatch")

	// ErrSerialization is a scene document that cannot be imported.
	// The previous scene is left intact.
	ErrSerialization = errors.New("scene serialization error")
)
