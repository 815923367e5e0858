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
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateArguments validates tool arguments against the tool's JSON
// Schema. A nil schema means no validation.
func ValidateArguments(schema *JSONSchema, arguments map[string]interface{}) error {
	if schema == nil {
		return nil
	}

	schemaJSON, err := schema.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	argsLoader := gojsonschema.NewGoLoader(arguments)

	result, err := gojsonschema.Validate(schemaLoader, argsLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, e := range result.Errors() {
			errs[i] = e.String()
		}
		return fmt.Errorf("invalid arguments: %v", errs)
	}

	return nil
}
