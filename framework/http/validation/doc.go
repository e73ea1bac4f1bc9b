// Package validation checks flat string inputs, such as query parameters,
// against pipe-separated rules.
//
//	v := validation.Make(map[string]string{
//	    "lifetime": "singleton",
//	}, validation.Rules{
//	    "lifetime": "sometimes|in:transient,singleton",
//	    "resolved": "sometimes|boolean",
//	})
//
//	if v.Fails() {
//	    // JSON: {"errors": {"field": ["message1", "message2"]}}
//	}
//
// Rules:
//   - required    field must be present and non-empty
//   - sometimes   skips the field's remaining rules when it is absent
//   - boolean     true/false/1/0/yes/no (case-insensitive)
//   - integer     parseable as int
//   - max:n       at most n UTF-8 characters
//   - in:a,b,c    value must be in the comma-separated list
//   - gte:n       numeric value of at least n
//
// Processing of a field stops at its first failing rule.
package validation
