package access

import (
	"errors"
	"testing"
)

func TestStaffCatalog(t *testing.T) {
	anon := Caller{}
	user := Caller{UserID: 2, Username: "alice"}
	staff := Caller{UserID: 1, Username: "admin", IsStaff: true}

	tests := []struct {
		name   string
		caller Caller
		scope  Scope
		op     Operation
		want   error
	}{
		{"anonymous list catalog", anon, ScopeCatalog, OpList, nil},
		{"anonymous retrieve booking", anon, ScopeBooking, OpRetrieve, nil},
		{"anonymous create catalog", anon, ScopeCatalog, OpCreate, ErrUnauthenticated},
		{"anonymous delete booking", anon, ScopeBooking, OpDelete, ErrUnauthenticated},
		{"user create catalog", user, ScopeCatalog, OpCreate, ErrForbidden},
		{"user patch catalog", user, ScopeCatalog, OpPartialUpdate, ErrForbidden},
		{"user create booking", user, ScopeBooking, OpCreate, nil},
		{"user replace booking", user, ScopeBooking, OpReplace, nil},
		{"staff delete catalog", staff, ScopeCatalog, OpDelete, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StaffCatalog.Authorize(tt.caller, tt.scope, tt.op)
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAuthenticated(t *testing.T) {
	for op := OpList; op <= OpDelete; op++ {
		if err := Authenticated.Authorize(Caller{}, ScopeCatalog, op); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", op, err)
		}
		if err := Authenticated.Authorize(Caller{UserID: 5}, ScopeCatalog, op); err != nil {
			t.Fatalf("%s: expected nil, got %v", op, err)
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "staff", " STAFF ", "authenticated"} {
		if _, err := ByName(name); err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("owner"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestOperationString(t *testing.T) {
	if OpPartialUpdate.String() != "partial_update" {
		t.Fatalf("unexpected name %q", OpPartialUpdate.String())
	}
	if !OpRetrieve.ReadOnly() || OpDelete.ReadOnly() {
		t.Fatal("ReadOnly classification is wrong")
	}
}
