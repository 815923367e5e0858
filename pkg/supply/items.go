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

// Package supply implements the hospital supply-chain domain: reference
// data for tracked item kinds, the purchase order ledger, the order
// lifecycle rules, and the report formatting shared by all tools.
package supply

// ItemKind identifies one of the fixed hospital resource categories
// tracked by the system. The set is closed; unknown values are rejected,
// never silently defaulted.
type ItemKind string

const (
	ItemOxygenCylinders ItemKind = "oxygen_cylinders"
	ItemICUBeds         ItemKind = "icu_beds"
	ItemVentilators     ItemKind = "ventilators"
)

// itemDisplayNames maps item kinds to their human-readable names used in
// tool output.
var itemDisplayNames = map[ItemKind]string{
	ItemOxygenCylinders: "Oxygen Cylinders",
	ItemICUBeds:         "ICU Beds",
	ItemVentilators:     "Ventilators",
}

// AllItemKinds returns the fixed item kind set in a stable order.
func AllItemKinds() []ItemKind {
	return []ItemKind{ItemOxygenCylinders, ItemICUBeds, ItemVentilators}
}

// ParseItemKind validates membership in the fixed item kind set.
func ParseItemKind(s string) (ItemKind, error) {
	kind := ItemKind(s)
	if _, ok := itemDisplayNames[kind]; !ok {
		return "", NewError(KindUnknownItem, "unknown item: %q (expected one of %v)", s, AllItemKinds())
	}
	return kind, nil
}

// DisplayName returns the human-readable name for the item kind.
func (k ItemKind) DisplayName() string {
	if name, ok := itemDisplayNames[k]; ok {
		return name
	}
	return string(k)
}
