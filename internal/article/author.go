package article

// Author represents an <author> element with its affiliations.
type Author struct {
	PersonName   PersonName    `json:"person_name"`
	Affiliations []Affiliation `json:"affiliations,omitempty"`
	Email        *string       `json:"email,omitempty"`
}

// PersonName represents a <persName> element.
type PersonName struct {
	Surname   string  `json:"surname"`
	FirstName *string `json:"first_name,omitempty"`
}

// String returns "First Surname", or just the surname when no first name is known.
func (p PersonName) String() string {
	if p.FirstName != nil && *p.FirstName != "" {
		return *p.FirstName + " " + p.Surname
	}
	return p.Surname
}

// Affiliation represents an <affiliation> element.
type Affiliation struct {
	Department  *string `json:"department,omitempty"`
	Institution *string `json:"institution,omitempty"`
	Laboratory  *string `json:"laboratory,omitempty"`
}

// IsEmpty reports whether no organisation name is set.
func (a Affiliation) IsEmpty() bool {
	return allUnset(a)
}
