package domain

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestRole_Ordering(t *testing.T) {
	ordered := []Role{RoleNormal, RoleAuthor, RoleAdmin}

	for i, lower := range ordered {
		for j, higher := range ordered {
			if i >= j {
				continue
			}
			if !higher.AtLeast(lower) {
				t.Errorf("%s should satisfy AtLeast(%s)", higher, lower)
			}
			if lower.AtLeast(higher) {
				t.Errorf("%s should not satisfy AtLeast(%s)", lower, higher)
			}
			if lower.Compare(higher) != -1 || higher.Compare(lower) != 1 {
				t.Errorf("Compare(%s, %s) ordering wrong", lower, higher)
			}
		}
	}

	for _, r := range ordered {
		if !r.AtLeast(r) {
			t.Errorf("%s should satisfy AtLeast(%s)", r, r)
		}
		if r.Compare(r) != 0 {
			t.Errorf("Compare(%s, %s) should be 0", r, r)
		}
	}
}

func TestRole_CanAuthor(t *testing.T) {
	if RoleNormal.CanAuthor() {
		t.Fatalf("normal should not author")
	}
	if !RoleAuthor.CanAuthor() || !RoleAdmin.CanAuthor() {
		t.Fatalf("author and admin should author")
	}
}

func TestRole_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal([]Role{RoleNormal, RoleAuthor, RoleAdmin})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["normal","author","admin"]` {
		t.Fatalf("unexpected encoding: %s", data)
	}

	var roles []Role
	if err := json.Unmarshal(data, &roles); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(roles) != 3 || roles[0] != RoleNormal || roles[1] != RoleAuthor || roles[2] != RoleAdmin {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestRole_UnmarshalRejectsUnknownTag(t *testing.T) {
	var r Role
	if err := json.Unmarshal([]byte(`"superuser"`), &r); err == nil {
		t.Fatalf("expected unknown tag to be rejected")
	}
	if err := json.Unmarshal([]byte(`3`), &r); err == nil {
		t.Fatalf("expected numeric tag to be rejected")
	}
}

func TestRole_MarshalRejectsOutOfRange(t *testing.T) {
	if _, err := json.Marshal(Role(42)); err == nil {
		t.Fatalf("expected out-of-range role to be rejected")
	}
}

func TestRole_BSONRoundTrip(t *testing.T) {
	typ, data, err := RoleAuthor.MarshalBSONValue()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if typ != bson.TypeInt32 {
		t.Fatalf("stored type = %s, want int32", typ)
	}

	var r Role
	if err := r.UnmarshalBSONValue(typ, data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r != RoleAuthor {
		t.Fatalf("round trip got %s", r)
	}
}

func TestRole_BSONRejectsUnknownDiscriminant(t *testing.T) {
	typ, data, err := bson.MarshalValue(int32(7))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var r Role
	if err := r.UnmarshalBSONValue(typ, data); err == nil {
		t.Fatalf("expected unknown discriminant to be rejected")
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("author")
	if err != nil || r != RoleAuthor {
		t.Fatalf("ParseRole(author) = %v, %v", r, err)
	}
	if _, err := ParseRole("root"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestHighestRole(t *testing.T) {
	if got := HighestRole(nil); got != RoleNormal {
		t.Fatalf("empty slice should yield normal, got %s", got)
	}
	if got := HighestRole([]Role{RoleNormal, RoleAdmin, RoleAuthor}); got != RoleAdmin {
		t.Fatalf("expected admin, got %s", got)
	}
}
