// Package forms validates public and dashboard form submissions into typed
// records, accumulating field-level error messages instead of failing fast.
package forms

// Errors maps field name to one or more human-readable messages. It is the
// shape the ajax endpoints serialize under "errors".
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// Merge folds another error set into this one.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// First returns the first message recorded for a field, for templates that
// only show one message per input.
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
