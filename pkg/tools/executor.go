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
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownTool is wrapped by Execute when no tool matches the requested
// name. Callers use errors.Is to distinguish unknown-operation failures
// from tool-level failures.
var ErrUnknownTool = fmt.Errorf("unknown tool")

// Executor executes tools by name with schema validation, timing, and
// per-call correlation ids.
type Executor struct {
	registry *Registry
	logger   *zap.Logger
}

// NewExecutor creates a new tool executor over the given registry.
func NewExecutor(registry *Registry, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		registry: registry,
		logger:   logger,
	}
}

// Execute looks up a tool by name, validates the arguments against its
// schema, and runs it. Tool-level failures come back as a failed Result,
// not an error; the error return is reserved for dispatch failures such
// as an unknown tool name.
func (e *Executor) Execute(ctx context.Context, toolName string, params map[string]interface{}) (*Result, error) {
	tool, ok := e.registry.Get(toolName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, toolName)
	}

	// MCP clients omit the arguments field entirely for tools that take
	// none. That arrives here as a nil map, which would serialize to JSON
	// null and fail every object schema.
	if params == nil {
		params = make(map[string]interface{})
	}

	callID := uuid.NewString()
	logger := e.logger.With(
		zap.String("tool", toolName),
		zap.String("call_id", callID),
	)

	// Advisory pre-check against the declared schema. Tools still
	// re-validate their own arguments in Execute.
	if err := ValidateArguments(tool.InputSchema(), params); err != nil {
		logger.Warn("argument validation failed", zap.Error(err))
		return &Result{
			Success: false,
			Error: &Error{
				Code:    "INVALID_PARAMS",
				Message: err.Error(),
			},
			Metadata: map[string]interface{}{"call_id": callID},
		}, nil
	}

	start := time.Now()
	result, err := tool.Execute(ctx, params)
	duration := time.Since(start)

	if err != nil {
		logger.Warn("tool execution failed", zap.Error(err), zap.Duration("duration", duration))
		return &Result{
			Success:         false,
			Error:           &Error{Code: "EXECUTION_FAILED", Message: err.Error()},
			Metadata:        map[string]interface{}{"call_id": callID},
			ExecutionTimeMs: duration.Milliseconds(),
		}, nil
	}

	if result == nil {
		result = &Result{Success: true}
	}
	// Executor timing is authoritative, even if the tool set its own.
	result.ExecutionTimeMs = duration.Milliseconds()
	if result.Metadata == nil {
		result.Metadata = make(map[string]interface{})
	}
	result.Metadata["call_id"] = callID

	logger.Debug("tool executed",
		zap.Bool("success", result.Success),
		zap.Duration("duration", duration),
	)
	return result, nil
}

// ListAvailableTools returns all tools available in the executor's registry.
func (e *Executor) ListAvailableTools() []Tool {
	return e.registry.ListTools()
}
