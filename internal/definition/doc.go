// Package definition loads struct types from YAML definition files.
//
// A definition declares types with their props. Each prop names its
// validators from a Registry, an optional default, per-source mappers and
// projection hints:
//
//	version: "1"
//	types:
//	  - name: CreateUser
//	    props:
//	      - name: login
//	        validators: [string, alnum, {name: length, params: [1, 32]}]
//	      - name: password
//	        exclude: true
//	      - name: isActive
//	        default: true
//	        validators: [bool]
//	        mappers:
//	          json: {from: active, as: bool, categories: [textual_bool]}
//
// Check lints a definition and reports every finding as a diagnostic.
// Build compiles it into structs.Type values.
package definition
