package policy

// Role is an access level on a folder. The order is total: None < Viewer <
// Editor < Admin < Owner. The owner never has a grant row; it is an explicit
// level above all stored roles.
type Role int

const (
	None Role = iota
	Viewer
	Editor
	Admin
	Owner
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case Viewer:
		return "viewer"
	case Editor:
		return "editor"
	case Admin:
		return "admin"
	case Owner:
		return "owner"
	default:
		return "none"
	}
}

// ParseRole maps a stored role string to a Role. Unknown strings map to None.
func ParseRole(s string) Role {
	switch s {
	case "viewer":
		return Viewer
	case "editor":
		return Editor
	case "admin":
		return Admin
	case "owner":
		return Owner
	default:
		return None
	}
}

// Action is an operation gated by the role policy.
type Action string

const (
	ReadContent      Action = "READ_CONTENT"
	WriteContent     Action = "WRITE_CONTENT"
	ManageMembers    Action = "MANAGE_MEMBERS"
	ChangeOtherRole  Action = "CHANGE_OTHER_ROLE"
	ChangeOwnRole    Action = "CHANGE_OWN_ROLE"
	ManagePublicLink Action = "MANAGE_PUBLIC_LINK"
	DeleteFolder     Action = "DELETE_FOLDER"
)

// minimumRole is the decision table: the lowest role allowed to perform each
// action. Actions absent from the table are denied for every role.
var minimumRole = map[Action]Role{
	ReadContent:      Viewer,
	WriteContent:     Editor,
	ManageMembers:    Admin,
	ChangeOtherRole:  Admin,
	ManagePublicLink: Admin,
	DeleteFolder:     Owner,
}

// Decide returns whether a role may perform an action. ChangeOwnRole is a
// hard deny for every role, checked before the table lookup.
func Decide(role Role, action Action) bool {
	if action == ChangeOwnRole {
		return false
	}
	min, ok := minimumRole[action]
	if !ok {
		return false
	}
	return role >= min
}
