// Package metadata extracts and validates dataset metadata embedded in
// PostgreSQL COMMENT ON TABLE scripts.
//
// # Script Format
//
// A metadata script stores a JSON document as the string literal of a
// COMMENT ON TABLE statement:
//
//	COMMENT ON TABLE model_draft.power_plants IS '{
//	    "title": "Power plants",
//	    "description": "...",
//	    ...
//	    "metadata_version": "1.3"
//	}';
//
// The first line is a preamble. The document body starts on the second line
// and the final line ends with the statement terminator "';". Extract strips
// both and restores the opening brace consumed by the preamble.
//
// # Validation
//
// Validation is advisory. Validate collects every missing key for the
// declared source schema version (1.2 or 1.3) and RogueKeys lists
// unrecognised top-level keys. Neither stops a conversion.
//
// # Usage
//
//	script, err := metadata.Extract(content, path)
//	if err != nil {
//	    return err // *StructureError
//	}
//	doc, err := document.Parse([]byte(script.Document))
//	...
//	desc, _ := metadata.DescriptorFor(metadata.DetectVersion(doc))
//	result := metadata.Validate(doc, desc)
//	for _, e := range result.Errors {
//	    logger.Warn("%v", e)
//	}
package metadata
