package pkg

import (
	"github.com/google/uuid"

	"hackhive/internal/models"
)

// Caller is the resolved identity of the requesting user. A nil *Caller is
// an anonymous request.
type Caller struct {
	ID             uuid.UUID
	Role           models.Role
	IsHostApproved bool
	IsActive       bool
}

func CallerFromUser(u *models.User) *Caller {
	if u == nil {
		return nil
	}
	return &Caller{
		ID:             u.ID,
		Role:           u.Role,
		IsHostApproved: u.IsHostApproved,
		IsActive:       u.IsActive,
	}
}

// The gate below is the single decision table shared by every resource type.
// Rules are applied in order; the first failing rule decides the denial.

// CanWrite covers plain authenticated writes (forums, stories, mentorship
// requests): any active caller may proceed.
func CanWrite(caller *Caller) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if !caller.IsActive {
		return ErrAccountInactive
	}
	return nil
}

// CanCreateHostGated covers creation of competition-like and content
// resources: HOST (approved) or ADMIN only.
func CanCreateHostGated(caller *Caller) error {
	if err := CanWrite(caller); err != nil {
		return err
	}
	switch caller.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleHost:
		if !caller.IsHostApproved {
			return ErrHostPending
		}
		return nil
	default:
		return ErrHostRequired
	}
}

// CanModify covers update/delete: owner or ADMIN. The ownership miss is
// reported as a not-found so existence is not leaked.
func CanModify(caller *Caller, ownerID uuid.UUID, resource string) error {
	if err := CanWrite(caller); err != nil {
		return err
	}
	if caller.Role == models.RoleAdmin || caller.ID == ownerID {
		return nil
	}
	return NotFound(resource)
}

// CanRegister covers participation: any active authenticated caller except
// the resource's own host. The already-registered case is decided by the
// ledger's unique constraint, not here.
func CanRegister(caller *Caller, hostID uuid.UUID) error {
	if err := CanWrite(caller); err != nil {
		return err
	}
	if caller.ID == hostID {
		return ErrSelfRegistration
	}
	return nil
}

func IsAdmin(caller *Caller) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if !caller.IsActive {
		return ErrAccountInactive
	}
	if caller.Role != models.RoleAdmin {
		return ErrAdminRequired
	}
	return nil
}
