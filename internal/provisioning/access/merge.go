package access

import (
	"slices"

	"github.com/imamik/wsup/internal/platform/gcp"
)

// MergeResult tells whether a merge changed the policy.
type MergeResult int

const (
	// NoOp means the policy already satisfied the request.
	NoOp MergeResult = iota
	// PolicyUpdated means the returned policy must be written back.
	PolicyUpdated
)

func (r MergeResult) String() string {
	if r == PolicyUpdated {
		return "updated"
	}
	return "no-op"
}

// EnsureBinding returns a copy of policy in which principal appears in some
// binding. If any binding, of any role, already lists principal the copy is
// unchanged and NoOp is returned. Otherwise a new binding {role, [principal]}
// is appended; it is never folded into an existing binding for role.
//
// The input is not modified.
func EnsureBinding(policy *gcp.Policy, role, principal string) (*gcp.Policy, MergeResult) {
	out := policy.Clone()
	if HasMember(out, principal) {
		return out, NoOp
	}
	out.Bindings = append(out.Bindings, gcp.Binding{Role: role, Members: []string{principal}})
	return out, PolicyUpdated
}

// AddRoleMember returns a copy of policy in which member holds role through
// an unconditional binding. The member joins the existing binding for role,
// or a new binding is appended when there is none.
//
// The input is not modified.
func AddRoleMember(policy *gcp.Policy, role, member string) (*gcp.Policy, MergeResult) {
	out := policy.Clone()
	for i := range out.Bindings {
		b := &out.Bindings[i]
		if b.Role != role || b.Condition != nil {
			continue
		}
		if slices.Contains(b.Members, member) {
			return out, NoOp
		}
		b.Members = append(b.Members, member)
		return out, PolicyUpdated
	}
	out.Bindings = append(out.Bindings, gcp.Binding{Role: role, Members: []string{member}})
	return out, PolicyUpdated
}

// HasMember reports whether any binding lists member exactly.
func HasMember(policy *gcp.Policy, member string) bool {
	if policy == nil {
		return false
	}
	for _, b := range policy.Bindings {
		if slices.Contains(b.Members, member) {
			return true
		}
	}
	return false
}
