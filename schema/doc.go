// Package schema provides parsing and read-only navigation of document
// schemas.
//
// A schema is itself a JSON-like value describing the shape of documents:
//
//	{
//	    "type": "object",
//	    "properties": {
//	        "save_on_exit": {
//	            "type": "boolean",
//	            "default": true,
//	            "optional": true
//	        }
//	    }
//	}
//
// Recognized keys are type, default, optional, properties, items,
// additionalItems, additionalProperties, title, description, check and
// __fragment_cls. Schemas are optional scaffolding: any key or type
// declaration that is absent degrades to the accept-anything schema rather
// than failing.
//
// Schema nodes are read-only after parsing and independent of any document
// instance; one parsed schema may back many documents.
package schema
