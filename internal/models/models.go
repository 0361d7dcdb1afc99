package models

// AccessRole is a stored collaborator role. The folder owner never has a
// grant row; ownership lives on the Folder itself.
type AccessRole string

const (
	RoleViewer AccessRole = "viewer"
	RoleEditor AccessRole = "editor"
	RoleAdmin  AccessRole = "admin"
)

// Valid reports whether the role is one of the storable collaborator roles.
func (r AccessRole) Valid() bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}
