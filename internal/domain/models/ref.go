// internal/domain/models/ref.go
package models

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference to another backend document that may arrive either
// populated ({"_id":..., "name":..., "email":...}) or as a bare id string.
// The backend populates some references and not others depending on the
// endpoint, so both forms decode into the same struct.
type Ref struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	UniqueCode   string `json:"uniqueCode"`
	Designation  string `json:"designation"`

	// Petition refs carry these instead of a name.
	Title              string `json:"title"`
	NumberOfSignatures int    `json:"numberOfSignatures"`

	// Populated is false when only an id string was sent.
	Populated bool `json:"-"`
}

// UnmarshalJSON accepts an object, a string id, or null.
func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Ref(p)
	r.Populated = true
	return nil
}

// Label renders "Name (email)" for populated refs, falling back to the id
// and then to "Unknown".
func (r Ref) Label() string {
	if r.Name != "" {
		contact := r.Email
		if contact == "" {
			contact = r.ID
		}
		if contact == "" {
			return r.Name
		}
		return r.Name + " (" + contact + ")"
	}
	if r.ID != "" {
		return r.ID
	}
	return "Unknown"
}
