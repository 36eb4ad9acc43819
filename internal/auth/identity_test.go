package auth

import "testing"

func TestStorableID(t *testing.T) {
	cases := []struct {
		name string
		id   string
		ok   bool
	}{
		{"well-formed hex", "64f1b2c3d4e5f60718293a4b", true},
		{"env admin sentinel", EnvAdminID, false},
		{"empty", "", false},
		{"too short", "64f1b2c3", false},
		{"right length, not hex", "zzzzzzzzzzzzzzzzzzzzzzzz", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity := Identity{ID: tc.id}
			oid, ok := identity.StorableID()
			if ok != tc.ok {
				t.Fatalf("StorableID(%q) ok = %v, want %v", tc.id, ok, tc.ok)
			}
			if ok && oid.Hex() != tc.id {
				t.Fatalf("StorableID(%q) round trip = %q", tc.id, oid.Hex())
			}
		})
	}
}

func TestIsEnvAdmin(t *testing.T) {
	if !(Identity{ID: EnvAdminID}).IsEnvAdmin() {
		t.Fatal("sentinel id not recognized as env admin")
	}
	if (Identity{ID: "64f1b2c3d4e5f60718293a4b"}).IsEnvAdmin() {
		t.Fatal("document id treated as env admin")
	}
}
