package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// decodeFailures counts stored values that could not be decoded and were
// replaced with an empty value.
var decodeFailures atomic.Int64

// DecodeFailures returns how many malformed stored values have been replaced
// with their empty value since process start.
func DecodeFailures() int64 {
	return decodeFailures.Load()
}

func recordDecodeFailure(kind, text string, err error) {
	decodeFailures.Add(1)
	sample := text
	if len(sample) > 64 {
		sample = sample[:64]
	}
	log.Warn().
		Err(err).
		Str("codec", kind).
		Str("stored", sample).
		Msg("malformed stored value replaced with empty value")
}

// StringList is an ordered list of strings persisted as a JSON array.
type StringList []string

// EncodeStringList returns the storage text for l. A nil list encodes as "[]".
func EncodeStringList(l StringList) string {
	if l == nil {
		return "[]"
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		// []string always marshals
		return "[]"
	}
	return string(b)
}

// DecodeStringList parses storage text into a list. It never fails: empty,
// null, or malformed text yields an empty, non-nil list.
func DecodeStringList(text string) StringList {
	text = strings.TrimSpace(text)
	if text == "" || text == "null" {
		return StringList{}
	}
	var out []string
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		recordDecodeFailure("string_list", text, err)
		return StringList{}
	}
	if out == nil {
		return StringList{}
	}
	return out
}

func (l StringList) Value() (driver.Value, error) {
	return EncodeStringList(l), nil
}

func (l *StringList) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return err
	}
	*l = DecodeStringList(text)
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	return []byte(EncodeStringList(l)), nil
}

func (l *StringList) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

func (StringList) GormDataType() string {
	return "json"
}

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// LinkMap maps a label to a URL and is persisted as a JSON object.
type LinkMap map[string]string

// EncodeLinkMap returns the storage text for m. A nil map encodes as "{}".
func EncodeLinkMap(m LinkMap) string {
	if m == nil {
		return "{}"
	}
	b, err := json.Marshal(map[string]string(m))
	if err != nil {
		return "{}"
	}
	return string(b)
}

// DecodeLinkMap parses storage text into a map, falling back to an empty map
// the same way DecodeStringList does.
func DecodeLinkMap(text string) LinkMap {
	text = strings.TrimSpace(text)
	if text == "" || text == "null" {
		return LinkMap{}
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		recordDecodeFailure("link_map", text, err)
		return LinkMap{}
	}
	if out == nil {
		return LinkMap{}
	}
	return out
}

func (m LinkMap) Value() (driver.Value, error) {
	return EncodeLinkMap(m), nil
}

func (m *LinkMap) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return err
	}
	*m = DecodeLinkMap(text)
	return nil
}

func (m LinkMap) MarshalJSON() ([]byte, error) {
	return []byte(EncodeLinkMap(m)), nil
}

func (m *LinkMap) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*m = LinkMap{}
		return nil
	}
	var out map[string]string
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

func (LinkMap) GormDataType() string {
	return "json"
}

func (LinkMap) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return jsonColumnType(db)
}

// jsonColumnType picks the column type used by AutoMigrate: native jsonb on
// PostgreSQL, plain text everywhere else.
func jsonColumnType(db *gorm.DB) string {
	if db != nil && db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}

func scanText(src any) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported stored type %T", src)
	}
}
