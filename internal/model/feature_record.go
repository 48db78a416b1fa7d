package model

import (
	"bytes"
	"fmt"
	"strconv"
)

// Feature field names. The downstream classifier was trained against these
// exact names; renaming any of them requires retraining.
const (
	FieldURLLength                = "url_length"
	FieldNumDots                  = "num_dots"
	FieldHasHTTPS                 = "has_https"
	FieldSuspiciousTLD            = "suspicious_tld"
	FieldDomainLength             = "domain_length"
	FieldDomainEntropy            = "domain_entropy"
	FieldKeywordDensity           = "keyword_density"
	FieldSuspiciousKeywordFound   = "suspicious_keyword_found"
	FieldHasPasswordField         = "has_password_field"
	FieldFormWithSuspiciousWords  = "form_with_suspicious_keywords"
	FieldNumForms                 = "num_forms"
	FieldNumInputs                = "num_inputs"
	FieldDuplicatePhrases         = "duplicate_phrases"
	FieldLinkDensity              = "link_density"
	FieldExternalLinkRatio        = "external_link_ratio"
	FieldMismatchedAnchorRatio    = "mismatched_anchor_ratio"
	FieldHasJSTimer               = "has_js_timer"
	FieldHasHTMLTimer             = "has_html_timer"
	FieldTimerUrgencyScore        = "timer_urgency_score"
	FieldLargeSuspiciousImage     = "large_suspicious_image"
	FieldBase64ImageDetected      = "base64_image_detected"
	FieldOCRAlertTextDetected     = "ocr_alert_text_detected"
	FieldAlertImageNearFormOrLink = "alert_image_followed_by_form_or_link"
	FieldDomainAgeDays            = "domain_age_days"
	FieldIsNewDomain              = "is_new_domain"
)

// VectorFieldName returns the schema name of the i-th text-vector component.
func VectorFieldName(i int) string {
	return "tfidf_" + strconv.Itoa(i)
}

// FieldType describes how a field's value is typed and formatted.
type FieldType int

// Field value types.
const (
	// TypeInt fields hold whole numbers (counts and boolean flags as 0/1).
	TypeInt FieldType = iota
	// TypeFloat fields hold rounded fractional values (densities, ratios).
	TypeFloat
)

// Field is one named column of the feature schema.
type Field struct {
	// Name is the stable column name.
	Name string
	// Type controls value formatting in CSV and JSON output.
	Type FieldType
}

// Schema is the fixed, ordered set of feature fields produced by every
// extraction call. It is constructed once at startup (the vectorizer
// dimension is the only variable part) and never changes afterward, which
// guarantees a constant key set per record by construction.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds the feature schema for the given text-vector dimension.
// The field order matches the training dataset column order exactly.
func NewSchema(vectorDim int) *Schema {
	fields := []Field{
		{FieldURLLength, TypeInt},
		{FieldNumDots, TypeInt},
		{FieldHasHTTPS, TypeInt},
		{FieldSuspiciousTLD, TypeInt},
		{FieldDomainLength, TypeInt},
		{FieldDomainEntropy, TypeFloat},
		{FieldKeywordDensity, TypeFloat},
		{FieldSuspiciousKeywordFound, TypeInt},
		{FieldHasPasswordField, TypeInt},
		{FieldFormWithSuspiciousWords, TypeInt},
		{FieldNumForms, TypeInt},
		{FieldNumInputs, TypeInt},
	}
	for i := 0; i < vectorDim; i++ {
		fields = append(fields, Field{VectorFieldName(i), TypeFloat})
	}
	fields = append(fields,
		Field{FieldDuplicatePhrases, TypeInt},
		Field{FieldLinkDensity, TypeFloat},
		Field{FieldExternalLinkRatio, TypeFloat},
		Field{FieldMismatchedAnchorRatio, TypeFloat},
		Field{FieldHasJSTimer, TypeInt},
		Field{FieldHasHTMLTimer, TypeInt},
		Field{FieldTimerUrgencyScore, TypeInt},
		Field{FieldLargeSuspiciousImage, TypeInt},
		Field{FieldBase64ImageDetected, TypeInt},
		Field{FieldOCRAlertTextDetected, TypeInt},
		Field{FieldAlertImageNearFormOrLink, TypeInt},
		Field{FieldDomainAgeDays, TypeInt},
		Field{FieldIsNewDomain, TypeInt},
	)

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return &Schema{fields: fields, index: index}
}

// Len returns the number of fields in the schema.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the ordered field list.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the ordered field names.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the schema contains the named field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// NewRecord creates a zero-filled record for this schema.
// Zero is the documented default for every field, so a record is valid
// (schema-complete) from the moment it is created.
func (s *Schema) NewRecord() *FeatureRecord {
	return &FeatureRecord{
		schema: s,
		values: make([]float64, len(s.fields)),
	}
}

// FeatureRecord is one complete, schema-conformant feature vector.
// Every record produced by the engine contains every schema field;
// signals whose producing analyzer failed are left at zero, never omitted.
type FeatureRecord struct {
	schema *Schema
	values []float64
}

// Schema returns the schema this record conforms to.
func (r *FeatureRecord) Schema() *Schema {
	return r.schema
}

// Set stores a value for the named field. Unknown names are ignored so
// that analyzers and schema can evolve independently in tests.
func (r *FeatureRecord) Set(name string, v float64) {
	if i, ok := r.schema.index[name]; ok {
		r.values[i] = v
	}
}

// SetInt stores an integer value for the named field.
func (r *FeatureRecord) SetInt(name string, v int) {
	r.Set(name, float64(v))
}

// SetBool stores a boolean flag as 0/1.
func (r *FeatureRecord) SetBool(name string, v bool) {
	if v {
		r.Set(name, 1)
	} else {
		r.Set(name, 0)
	}
}

// Get returns the value of the named field, or 0 for unknown names.
func (r *FeatureRecord) Get(name string) float64 {
	if i, ok := r.schema.index[name]; ok {
		return r.values[i]
	}
	return 0
}

// Values returns a copy of the record's values in schema order.
func (r *FeatureRecord) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

// Equal reports whether two records share a schema shape and hold
// identical values. Used to verify extraction idempotence.
func (r *FeatureRecord) Equal(other *FeatureRecord) bool {
	if other == nil || len(r.values) != len(other.values) {
		return false
	}
	for i, f := range r.schema.fields {
		if !other.schema.Has(f.Name) || r.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// FormatValue renders the i-th value according to its field type.
func (r *FeatureRecord) FormatValue(i int) string {
	if i < 0 || i >= len(r.values) {
		return ""
	}
	if r.schema.fields[i].Type == TypeInt {
		return strconv.FormatInt(int64(r.values[i]), 10)
	}
	return strconv.FormatFloat(r.values[i], 'g', -1, 64)
}

// MarshalJSON encodes the record as a JSON object whose keys appear in
// schema order. encoding/json map marshalling sorts keys alphabetically,
// which would scramble the column order, so we build the object by hand.
func (r *FeatureRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.schema.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%s", f.Name, r.FormatValue(i))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
