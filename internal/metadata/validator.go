package metadata

import (
	"fmt"

	"github.com/vvka-141/metaconv/internal/document"
)

// Validate checks doc against desc and collects every violation:
//   - Required top-level keys (MissingKeyError)
//   - Required subkeys of object-valued fields (MissingSubkeyError)
//   - Required keys of each list element, nested lists included (MissingListKeyError)
//
// Validation is advisory: callers report the result and carry on.
// A present field of the wrong type reports all of its required keys.
// An absent field is reported once, at top level.
func Validate(doc *document.Document, desc *SchemaDescriptor) ValidationResult {
	result := ValidationResult{Version: desc.Version, Valid: true}

	for _, key := range desc.Required {
		if !doc.Has(key) {
			result.AddError(&MissingKeyError{Key: key})
		}
	}

	for _, rule := range desc.Objects {
		if !doc.Has(rule.Key) {
			continue
		}
		obj := doc.Object(rule.Key)
		for _, sub := range rule.Required {
			if !obj.Has(sub) {
				result.AddError(&MissingSubkeyError{Object: rule.Key, Key: sub})
			}
		}
	}

	for _, rule := range desc.Lists {
		validateList(&result, rule.Key, doc.List(rule.Key), rule)
	}

	for _, key := range RogueKeys(doc, desc) {
		result.AddWarning(fmt.Sprintf("%q is not among the allowed keys", key))
	}

	return result
}

func validateList(result *ValidationResult, path string, items []any, rule ListRule) {
	for i, item := range items {
		elem, _ := item.(*document.Document)
		for _, key := range rule.Required {
			if !elem.Has(key) {
				result.AddError(&MissingListKeyError{List: path, Index: i, Key: key})
			}
		}
		for _, nested := range rule.Nested {
			validateList(result, fmt.Sprintf("%s[%d].%s", path, i, nested.Key), elem.List(nested.Key), nested)
		}
	}
}

// RogueKeys returns top-level keys of doc that desc does not recognise, in
// document order. They usually indicate typos or extraneous fields.
func RogueKeys(doc *document.Document, desc *SchemaDescriptor) []string {
	var rogue []string
	for _, key := range doc.Keys() {
		if !desc.IsAllowed(key) {
			rogue = append(rogue, key)
		}
	}
	return rogue
}
