// Package auth covers credential verification, token issuance, and the
// identity model shared by the API layer.
package auth

import "go.mongodb.org/mongo-driver/bson/primitive"

// EnvAdminID is the sentinel id of the environment-configured administrator.
// It never refers to a stored user document.
const EnvAdminID = "admin-env"

// Identity is the user projection embedded in tokens and attached to
// authenticated requests. ID is either EnvAdminID or the hex form of a user
// document id; callers distinguish the two through IsEnvAdmin and StorableID
// rather than comparing strings.
type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role"`

	Department string `json:"department,omitempty"`
	StudentID  string `json:"studentId,omitempty"`
	FacultyID  string `json:"facultyId,omitempty"`
	Course     string `json:"course,omitempty"`
	Branch     string `json:"branch,omitempty"`
}

// IsEnvAdmin reports whether the identity is the synthetic environment admin.
func (i Identity) IsEnvAdmin() bool {
	return i.ID == EnvAdminID
}

// StorableID returns the identity's id as a document reference. It reports
// false for the env admin and for any id that is not a well-formed reference.
func (i Identity) StorableID() (primitive.ObjectID, bool) {
	if i.IsEnvAdmin() {
		return primitive.NilObjectID, false
	}
	return ParseRef(i.ID)
}

// ParseRef parses a string as a document reference. A well-formed reference
// is a 24-character hex object id.
func ParseRef(s string) (primitive.ObjectID, bool) {
	if !primitive.IsValidObjectID(s) {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
