package domain

import "testing"

func TestUserRole_IsValid(t *testing.T) {
	t.Parallel()

	valid := []UserRole{UserRoleUser, UserRoleAdmin}
	for _, r := range valid {
		if !r.IsValid() {
			t.Errorf("expected %q to be valid", r)
		}
	}

	invalid := []UserRole{"", "superuser", "ADMIN"}
	for _, r := range invalid {
		if r.IsValid() {
			t.Errorf("expected %q to be invalid", r)
		}
	}
}

func TestUserRole_IsAdmin(t *testing.T) {
	t.Parallel()

	if !UserRoleAdmin.IsAdmin() {
		t.Error("admin role must report IsAdmin")
	}
	if UserRoleUser.IsAdmin() {
		t.Error("user role must not report IsAdmin")
	}
}

func TestPostCategory_IsValid(t *testing.T) {
	t.Parallel()

	valid := []PostCategory{PostCategoryNotice, PostCategoryCommunity}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("expected %q to be valid", c)
		}
	}

	invalid := []PostCategory{"", "free", "Notice"}
	for _, c := range invalid {
		if c.IsValid() {
			t.Errorf("expected %q to be invalid", c)
		}
	}
}
