// Package company implements the Anti-Corruption Layer translators for the
// downstream directory API's company resources.
package company

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// CompanyDTO matches the downstream Company schema.
type CompanyDTO struct {
	ID          FlexibleID `json:"id"`
	Name        string     `json:"name"`
	Logo        string     `json:"logo"`
	Location    string     `json:"location"`
	Industry    string     `json:"industry"`
	Size        string     `json:"size"`
	Website     string     `json:"website"`
	Description string     `json:"description"`
}

// FlexibleID accepts an identifier encoded as either a JSON string or a JSON
// integer. Some directory backends emit numeric IDs.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("company id must be a string or integer: %s", data)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("company id must be a string or integer: %s", data)
	}
	*id = FlexibleID(n.String())
	return nil
}

// CompanyListDTO matches the downstream list payload, which is either a bare
// array of companies or an object wrapping them under "companies".
type CompanyListDTO struct {
	Companies []CompanyDTO `json:"companies"`
}

var errUnexpectedShape = errors.New("expected an array of companies or an object with a companies field")

// UnmarshalJSON implements json.Unmarshaler.
func (l *CompanyListDTO) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return errUnexpectedShape
	}

	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, &l.Companies)
	case '{':
		var wrapped struct {
			Companies *[]CompanyDTO `json:"companies"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		if wrapped.Companies == nil {
			return errUnexpectedShape
		}
		l.Companies = *wrapped.Companies
		return nil
	default:
		return errUnexpectedShape
	}
}
