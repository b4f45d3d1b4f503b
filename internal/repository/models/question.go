package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// OptionList is the JSON-serialized option column of an mcq question.
// A NULL column scans to a nil list so that "no options" stays distinguishable
// from "empty options".
type OptionList []string

// Value implements the driver.Valuer interface
func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal([]string(o))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (o *OptionList) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}

	var bytesToParse []byte

	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("OptionList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*o = nil
		return nil
	}

	var parsed []string
	if err := json.Unmarshal(bytesToParse, &parsed); err != nil {
		return fmt.Errorf("OptionList Scan: %w", err)
	}
	*o = parsed
	return nil
}

// Question maps a row of the questions table. Oracle upper-cases unquoted
// identifiers, so queries alias every column to its lower-case name.
type Question struct {
	ID            int64          `db:"id"`
	Text          string         `db:"text"`
	QuestionType  string         `db:"question_type"`
	Options       OptionList     `db:"options"`
	CorrectAnswer sql.NullString `db:"correct_answer"`
}
