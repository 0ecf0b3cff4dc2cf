package objectstore

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

const aclSuffix = ".acl.json"

// ACL is the sidecar access policy stored next to a blob. AllowedUsers grants
// read-only access; only the owner may change the policy.
type ACL struct {
	Owner        string   `json:"owner"`
	Visibility   string   `json:"visibility"`
	AllowedUsers []string `json:"allowedUsers,omitempty"`
}

// ReadACL loads the sidecar for a blob. A missing sidecar returns (nil, nil):
// the object is treated as publicly readable.
func ReadACL(objectPath string) (*ACL, error) {
	data, err := os.ReadFile(objectPath + aclSuffix)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read acl sidecar: %w", err)
	}
	var acl ACL
	if err := json.Unmarshal(data, &acl); err != nil {
		return nil, fmt.Errorf("parse acl sidecar: %w", err)
	}
	return &acl, nil
}

// WriteACL stores the sidecar for a blob.
func WriteACL(objectPath string, acl *ACL) error {
	data, err := json.Marshal(acl)
	if err != nil {
		return fmt.Errorf("marshal acl: %w", err)
	}
	if err := os.WriteFile(objectPath+aclSuffix, data, 0o644); err != nil {
		return fmt.Errorf("write acl sidecar: %w", err)
	}
	return nil
}

// CanRead applies the access rule: no sidecar or public visibility means
// anyone may read; otherwise the owner and allow-listed users.
func CanRead(acl *ACL, userID string) bool {
	if acl == nil || acl.Visibility == VisibilityPublic {
		return true
	}
	if userID == "" {
		return false
	}
	if acl.Owner == userID {
		return true
	}
	for _, u := range acl.AllowedUsers {
		if u == userID {
			return true
		}
	}
	return false
}

// CanWrite allows policy and content changes for the owner only. Allow-listed
// users stay read-only.
func CanWrite(acl *ACL, userID string) bool {
	return acl != nil && userID != "" && acl.Owner == userID
}
