package models

import "strings"

// IdentityKind distinguishes the three kinds of session principal
type IdentityKind int

const (
	IdentityNone IdentityKind = iota
	IdentityGuest
	IdentityMember
)

// GuestToken is the textual marker for the guest identity
const GuestToken = "guest"

// Identity is the caller's current session principal
type Identity struct {
	Kind     IdentityKind
	MemberID string
}

// Member returns the identity of a specific team member
func Member(id string) Identity {
	return Identity{Kind: IdentityMember, MemberID: id}
}

// Guest returns the view-only guest identity
func Guest() Identity {
	return Identity{Kind: IdentityGuest}
}

// Anonymous returns the unauthenticated identity
func Anonymous() Identity {
	return Identity{}
}

// ParseIdentity maps a token ("", "guest" or a member id) to an Identity
func ParseIdentity(token string) Identity {
	token = strings.TrimSpace(token)
	switch {
	case token == "":
		return Anonymous()
	case strings.EqualFold(token, GuestToken):
		return Guest()
	default:
		return Member(token)
	}
}

// IsMember reports whether the identity is a specific team member
func (i Identity) IsMember() bool {
	return i.Kind == IdentityMember && i.MemberID != ""
}

// IsGuest reports whether the identity is the guest marker
func (i Identity) IsGuest() bool {
	return i.Kind == IdentityGuest
}

// ID returns the member id, or "" for guest and unauthenticated sessions
func (i Identity) ID() string {
	if i.IsMember() {
		return i.MemberID
	}
	return ""
}

func (i Identity) String() string {
	switch {
	case i.IsMember():
		return i.MemberID
	case i.IsGuest():
		return GuestToken
	default:
		return "anonymous"
	}
}
