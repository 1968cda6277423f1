package record

import "fmt"

// NotAvailable is the sentinel returned by the positional accessors when
// the requested field is missing from a record.
const NotAvailable = "N/A"

// Record is a single parsed log line: an ordered list of field names plus
// the values that were actually captured for it. Keys in Fields are always
// a subset of FieldOrder; an absent key means "not present", never empty
// string.
type Record struct {
	FieldOrder []string          `json:"field_order"`
	Fields     map[string]string `json:"fields"`
}

// New creates a record over the given field order. The order slice is kept
// by reference so bulk loads can share a single backing slice.
func New(order []string, fields map[string]string) *Record {
	if fields == nil {
		fields = make(map[string]string)
	}
	return &Record{FieldOrder: order, Fields: fields}
}

// Value returns the value for the named field and whether it is present.
func (r *Record) Value(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Has reports whether the record carries a value for the named field.
func (r *Record) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// Validate checks that every populated field appears in the field order.
func (r *Record) Validate() error {
	known := make(map[string]bool, len(r.FieldOrder))
	for _, name := range r.FieldOrder {
		known[name] = true
	}
	for name := range r.Fields {
		if !known[name] {
			return fmt.Errorf("field %q not present in field order", name)
		}
	}
	return nil
}

// The positional accessors derive the classic Timestamp/Level/Message triad
// from the first three fields regardless of their actual names. Older
// consumers built against the fixed three-column schema still work against
// arbitrary patterns through these.

// TimestampValue returns the first positional field.
func (r *Record) TimestampValue() string { return r.positional(0) }

// LevelValue returns the second positional field.
func (r *Record) LevelValue() string { return r.positional(1) }

// MessageValue returns the third positional field.
func (r *Record) MessageValue() string { return r.positional(2) }

func (r *Record) positional(i int) string {
	if i < 0 || i >= len(r.FieldOrder) {
		return NotAvailable
	}
	v, ok := r.Fields[r.FieldOrder[i]]
	if !ok {
		return NotAvailable
	}
	return v
}
