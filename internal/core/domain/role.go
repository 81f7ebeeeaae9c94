package domain

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Role is a privilege tier. Roles form a strict total order
// Normal < Author < Admin; "at least" checks compare discriminants.
type Role int

const (
	RoleNormal Role = iota
	RoleAuthor
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleNormal: "normal",
	RoleAuthor: "author",
	RoleAdmin:  "admin",
}

// ParseRole converts a textual role tag into a Role. Unknown tags are
// rejected rather than defaulted.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleNormal, fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Compare returns -1, 0 or 1 as r orders below, equal to, or above other.
func (r Role) Compare(other Role) int {
	switch {
	case r < other:
		return -1
	case r > other:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r carries at least the privilege of min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// CanAuthor reports whether a user holding r may create quizzes.
func (r Role) CanAuthor() bool {
	return r.AtLeast(RoleAuthor)
}

// MarshalJSON encodes the role as its string tag.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a string tag, rejecting unknown values.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalBSONValue stores the role as its int32 discriminant so it stays
// compact in user documents.
func (r Role) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !r.Valid() {
		return 0, nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return bson.MarshalValue(int32(r))
}

// UnmarshalBSONValue decodes an int32 discriminant, rejecting values
// outside the defined range.
func (r *Role) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var n int32
	if err := bson.UnmarshalValue(t, data, &n); err != nil {
		return fmt.Errorf("decode role: %w", err)
	}
	parsed := Role(n)
	if !parsed.Valid() {
		return fmt.Errorf("unknown role discriminant %d", n)
	}
	*r = parsed
	return nil
}

// HighestRole returns the most privileged role in the slice, or RoleNormal
// for an empty slice.
func HighestRole(roles []Role) Role {
	highest := RoleNormal
	for _, r := range roles {
		if r > highest {
			highest = r
		}
	}
	return highest
}
