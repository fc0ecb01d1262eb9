package auth

// Authorizer answers whether an identity may perform privileged shop
// operations. It is deliberately independent of the shop's own state so the
// access policy can be swapped without touching business logic.
type Authorizer interface {
	IsPrivilegedCaller(identity string) bool
}

// StaticAuthorizer authorizes a fixed allow-list of identities, typically
// loaded from the environment at startup.
type StaticAuthorizer struct {
	allowed map[string]struct{}
}

// NewStaticAuthorizer creates an authorizer for the given identities.
func NewStaticAuthorizer(identities ...string) *StaticAuthorizer {
	allowed := make(map[string]struct{}, len(identities))
	for _, id := range identities {
		if id == "" {
			continue
		}
		allowed[id] = struct{}{}
	}
	return &StaticAuthorizer{allowed: allowed}
}

// Make sure we conform to the interface
var _ Authorizer = (*StaticAuthorizer)(nil)

// IsPrivilegedCaller reports whether the identity is on the allow-list.
func (a *StaticAuthorizer) IsPrivilegedCaller(identity string) bool {
	_, ok := a.allowed[identity]
	return ok
}
