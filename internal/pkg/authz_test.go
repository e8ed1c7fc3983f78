package pkg

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"hackhive/internal/models"
)

func caller(role models.Role, approved, active bool) *Caller {
	return &Caller{ID: uuid.New(), Role: role, IsHostApproved: approved, IsActive: active}
}

func TestCanWrite(t *testing.T) {
	tests := []struct {
		name   string
		caller *Caller
		want   error
	}{
		{"anonymous", nil, ErrUnauthenticated},
		{"deactivated", caller(models.RoleUser, false, false), ErrAccountInactive},
		{"active user", caller(models.RoleUser, false, true), nil},
		{"active admin", caller(models.RoleAdmin, false, true), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWrite(tt.caller); !errors.Is(got, tt.want) {
				t.Fatalf("CanWrite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCreateHostGated(t *testing.T) {
	tests := []struct {
		name   string
		caller *Caller
		want   error
	}{
		{"anonymous", nil, ErrUnauthenticated},
		{"deactivated host", caller(models.RoleHost, true, false), ErrAccountInactive},
		{"plain user", caller(models.RoleUser, false, true), ErrHostRequired},
		{"unapproved host", caller(models.RoleHost, false, true), ErrHostPending},
		{"approved host", caller(models.RoleHost, true, true), nil},
		{"admin", caller(models.RoleAdmin, false, true), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCreateHostGated(tt.caller); !errors.Is(got, tt.want) {
				t.Fatalf("CanCreateHostGated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModify(t *testing.T) {
	owner := caller(models.RoleHost, true, true)

	if err := CanModify(owner, owner.ID, "hackathon"); err != nil {
		t.Fatalf("owner modify: %v", err)
	}
	if err := CanModify(caller(models.RoleAdmin, false, true), owner.ID, "hackathon"); err != nil {
		t.Fatalf("admin modify: %v", err)
	}

	// A non-owner gets a not-found, never a forbidden.
	err := CanModify(caller(models.RoleHost, true, true), owner.ID, "hackathon")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("non-owner modify: %v", err)
	}
	if apiErr.Code != "NOT_FOUND" || apiErr.Status != 404 {
		t.Fatalf("non-owner modify = %s/%d, want NOT_FOUND/404", apiErr.Code, apiErr.Status)
	}
	if err := CanModify(nil, owner.ID, "hackathon"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous modify = %v, want %v", err, ErrUnauthenticated)
	}
}

func TestCanRegister(t *testing.T) {
	host := caller(models.RoleHost, true, true)

	if err := CanRegister(caller(models.RoleUser, false, true), host.ID); err != nil {
		t.Fatalf("user register: %v", err)
	}
	if err := CanRegister(host, host.ID); !errors.Is(err, ErrSelfRegistration) {
		t.Fatalf("self register = %v, want %v", err, ErrSelfRegistration)
	}
	if err := CanRegister(nil, host.ID); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous register = %v, want %v", err, ErrUnauthenticated)
	}
	if err := CanRegister(caller(models.RoleUser, false, false), host.ID); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("inactive register = %v, want %v", err, ErrAccountInactive)
	}
}

func TestIsAdmin(t *testing.T) {
	if err := IsAdmin(caller(models.RoleAdmin, false, true)); err != nil {
		t.Fatalf("admin: %v", err)
	}
	if err := IsAdmin(caller(models.RoleHost, true, true)); !errors.Is(err, ErrAdminRequired) {
		t.Fatalf("host = %v, want %v", err, ErrAdminRequired)
	}
	if err := IsAdmin(nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous = %v, want %v", err, ErrUnauthenticated)
	}
}
