package core

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString is a string identifier the backend may send either as a JSON string or number.
type FlexString string

func (s FlexString) String() string { return string(s) }

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	if i, err := num.Int64(); err == nil {
		*s = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*s = FlexString(num.String())
	return nil
}
