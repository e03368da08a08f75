package entity

import (
	"encoding/json"
	"strings"
)

// Status describes where an order is in its delivery lifecycle.
type Status string

const (
	StatusPreparing Status = "preparing"
	StatusShipping  Status = "shipping"
	StatusDelivered Status = "delivered"
)

// legacyStatuses maps free-text values found in pre-migration data onto the
// closed enum. Matching is case-insensitive.
var legacyStatuses = map[string]Status{
	"preparo":    StatusPreparing,
	"em preparo": StatusPreparing,
	"envio":      StatusShipping,
	"em envio":   StatusShipping,
	"a caminho":  StatusShipping,
	"on the way": StatusShipping,
	"entregue":   StatusDelivered,
}

// ParseStatus normalizes s to a recognized status. Legacy free-text values
// are mapped onto the enum; unknown values are returned as-is with ok=false
// so readers can still display them.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPreparing, StatusShipping, StatusDelivered:
		return st, true
	}
	if st, ok := legacyStatuses[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, true
	}
	return Status(s), false
}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPreparing, StatusShipping, StatusDelivered:
		return true
	}
	return false
}

// UnmarshalJSON accepts legacy free-text statuses on read; they are
// normalized when recognized and preserved verbatim otherwise.
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	st, _ := ParseStatus(raw)
	*s = st
	return nil
}
