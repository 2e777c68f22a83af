package models

import (
	"testing"

	"github.com/camposur/reservas-backend/pkg/enums"
)

func TestRolePredicates(t *testing.T) {
	customer := &User{Role: enums.UserRoleCustomer}
	if !customer.IsCustomer() || customer.IsEmployee() || customer.IsAdministrator() {
		t.Fatal("customer predicates wrong")
	}

	employee := &User{Role: enums.UserRoleEmployee}
	if !employee.IsEmployee() || employee.IsCustomer() {
		t.Fatal("employee predicates wrong")
	}

	admin := &User{Role: enums.UserRoleAdministrator}
	if !admin.IsAdministrator() || admin.IsCustomer() {
		t.Fatal("administrator predicates wrong")
	}

	var nilUser *User
	if nilUser.IsCustomer() {
		t.Fatal("nil user should not satisfy any predicate")
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Ana", "Lopez", "Ana Lopez"},
		{"Ana", "", "Ana"},
		{"", "Lopez", "Lopez"},
		{"", "", ""},
		{"  Ana ", " Lopez ", "Ana Lopez"},
	}
	for _, tc := range cases {
		u := &User{FirstName: tc.first, LastName: tc.last}
		if got := u.DisplayName(); got != tc.want {
			t.Fatalf("DisplayName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}

	var nilUser *User
	if nilUser.DisplayName() != "" {
		t.Fatal("nil user display name should be empty")
	}
}
