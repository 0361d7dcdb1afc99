package policy

import "testing"

func TestRoleOrdering(t *testing.T) {
	order := []Role{None, Viewer, Editor, Admin, Owner}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("expected %s < %s", order[i-1], order[i])
		}
	}
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, r := range []Role{Viewer, Editor, Admin, Owner} {
		if got := ParseRole(r.String()); got != r {
			t.Errorf("ParseRole(%q) = %v, want %v", r.String(), got, r)
		}
	}
	if got := ParseRole("superuser"); got != None {
		t.Errorf("ParseRole(unknown) = %v, want None", got)
	}
}

func TestDecideTable(t *testing.T) {
	cases := []struct {
		role   Role
		action Action
		want   bool
	}{
		{None, ReadContent, false},
		{None, WriteContent, false},
		{Viewer, ReadContent, true},
		{Viewer, WriteContent, false},
		{Viewer, ManageMembers, false},
		{Viewer, ManagePublicLink, false},
		{Viewer, DeleteFolder, false},
		{Editor, ReadContent, true},
		{Editor, WriteContent, true},
		{Editor, ManageMembers, false},
		{Editor, ChangeOtherRole, false},
		{Editor, ManagePublicLink, false},
		{Admin, WriteContent, true},
		{Admin, ManageMembers, true},
		{Admin, ChangeOtherRole, true},
		{Admin, ManagePublicLink, true},
		{Admin, DeleteFolder, false},
		{Owner, ReadContent, true},
		{Owner, ManageMembers, true},
		{Owner, ChangeOtherRole, true},
		{Owner, ManagePublicLink, true},
		{Owner, DeleteFolder, true},
	}
	for _, c := range cases {
		if got := Decide(c.role, c.action); got != c.want {
			t.Errorf("Decide(%s, %s) = %v, want %v", c.role, c.action, got, c.want)
		}
	}
}

func TestChangeOwnRoleAlwaysDenied(t *testing.T) {
	for _, r := range []Role{None, Viewer, Editor, Admin, Owner} {
		if Decide(r, ChangeOwnRole) {
			t.Errorf("Decide(%s, ChangeOwnRole) = true, want false", r)
		}
	}
}

func TestUnknownActionDenied(t *testing.T) {
	if Decide(Owner, Action("FORMAT_DISK")) {
		t.Error("unknown action should be denied even for owner")
	}
}
