// Package document provides an insertion-ordered JSON object model.
//
// Metadata documents are compared by humans in diffs, so key order must
// survive a parse/serialize cycle. encoding/json maps lose that order;
// Document keeps it, and Parse decodes JSON text directly into it.
//
// Values held by a Document are one of:
//   - string
//   - json.Number (number literals are kept verbatim)
//   - bool
//   - nil
//   - *Document
//   - []any of the above
package document
