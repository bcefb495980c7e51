package domain

import "testing"

func TestRole_IsSignupRole(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleRider, true},
		{RoleDriver, true},
		{RoleAdmin, false},
		{Role(""), false},
	}
	for _, tt := range tests {
		if got := tt.role.IsSignupRole(); got != tt.want {
			t.Errorf("Role(%q).IsSignupRole() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestProfileUpdate_Apply(t *testing.T) {
	user := &User{FirstName: "Ada", LastName: "Lovelace", Phone: "0123456789"}

	if !(ProfileUpdate{}).IsEmpty() {
		t.Error("expected zero update to be empty")
	}

	phone := "9876543210"
	update := ProfileUpdate{Phone: &phone}
	if update.IsEmpty() {
		t.Fatal("expected update to be non-empty")
	}
	update.Apply(user)

	if user.Phone != phone {
		t.Errorf("phone = %q, want %q", user.Phone, phone)
	}
	if user.FirstName != "Ada" || user.LastName != "Lovelace" {
		t.Errorf("unset fields changed: %+v", user)
	}
}
