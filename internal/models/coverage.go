package models

import (
	"encoding/json"
	"errors"
)

// ErrInvalidPayer is returned when a coverage payer cannot be decoded.
var ErrInvalidPayer = errors.New("coverage payer must name a person or split_all")

// CoveragePayer says who pays a covered person's share: a single person, or
// everyone else on the bill split evenly. The zero value is not a valid payer.
type CoveragePayer struct {
	splitAll bool
	personID string
}

// PaidBy returns a payer that is the given person.
func PaidBy(personID string) CoveragePayer {
	return CoveragePayer{personID: personID}
}

// SplitAmongOthers returns a payer that spreads the amount over everyone else.
func SplitAmongOthers() CoveragePayer {
	return CoveragePayer{splitAll: true}
}

// IsSplitAmongOthers reports whether the group pays.
func (p CoveragePayer) IsSplitAmongOthers() bool {
	return p.splitAll
}

// PersonID returns the paying person's ID when the payer is a single person.
func (p CoveragePayer) PersonID() (string, bool) {
	if p.splitAll || p.personID == "" {
		return "", false
	}
	return p.personID, true
}

// IsZero reports whether the payer is unset.
func (p CoveragePayer) IsZero() bool {
	return !p.splitAll && p.personID == ""
}

func (p CoveragePayer) String() string {
	if p.splitAll {
		return "split among others"
	}
	return p.personID
}

type coveragePayerJSON struct {
	PersonID string `json:"person_id,omitempty"`
	SplitAll bool   `json:"split_all,omitempty"`
}

// MarshalJSON encodes the payer as {"person_id": ...} or {"split_all": true}.
func (p CoveragePayer) MarshalJSON() ([]byte, error) {
	return json.Marshal(coveragePayerJSON{PersonID: p.personID, SplitAll: p.splitAll})
}

// UnmarshalJSON decodes the object form written by MarshalJSON.
func (p *CoveragePayer) UnmarshalJSON(data []byte) error {
	var raw coveragePayerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.SplitAll && raw.PersonID == "":
		*p = SplitAmongOthers()
	case !raw.SplitAll && raw.PersonID != "":
		*p = PaidBy(raw.PersonID)
	default:
		return ErrInvalidPayer
	}
	return nil
}

// CoverAssignment moves CoveredID's raw share to Payer.
// A person never pays for themselves through an entry; paying for yourself
// is the absence of an entry.
type CoverAssignment struct {
	CoveredID string        `json:"covered_id"`
	Payer     CoveragePayer `json:"payer"`
}
