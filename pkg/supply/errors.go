// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package supply

import (
	"errors"
	"fmt"
)

// Kind classifies supply-chain failures. All of them are local validation
// failures: there is no I/O or external dependency to retry against.
type Kind int

const (
	// KindUnknownItem means the item is not in the fixed item kind set.
	KindUnknownItem Kind = iota + 1
	// KindInvalidArgument means a missing or malformed item, quantity, or id.
	KindInvalidArgument
	// KindNotFound means the referenced purchase order does not exist.
	KindNotFound
	// KindInvalidTransition means approval was requested on a non-pending order.
	KindInvalidTransition
	// KindUnknownOperation means the tool name is not recognized.
	KindUnknownOperation
)

// String returns the machine-readable code for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnknownItem:
		return "UNKNOWN_ITEM"
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidTransition:
		return "INVALID_TRANSITION"
	case KindUnknownOperation:
		return "UNKNOWN_OPERATION"
	default:
		return "UNKNOWN"
	}
}

// Error is a classified supply-chain error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates a classified error with a formatted message.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the classification of err, or 0 if err is not a supply error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// IsKind reports whether err is a supply error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
