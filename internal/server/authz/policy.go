// Package authz holds the per-entity authorization policies. Each policy is
// a pure function of the acting user and the entity row; denial is reported
// to clients as Forbidden, never as a missing entity.
package authz

import "taskboard/internal/server/models"

// ownerOrAdmin is the shared mutation rule for owned rows. Rows without an
// owner (shared defaults) are only mutable by admins.
func ownerOrAdmin(actor *models.User, ownerID string) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleUser:
		return ownerID != "" && actor.ID == ownerID
	default:
		return false
	}
}

// CanCreateCategory allows any authenticated user to create a category.
func CanCreateCategory(actor *models.User) bool {
	return actor != nil
}

// CanViewCategory grants view to every authenticated user. Default
// categories are shared and the list endpoint already scopes rows per user,
// so viewing a single category is deliberately open.
func CanViewCategory(actor *models.User, _ *models.Category) bool {
	return actor != nil
}

func CanUpdateCategory(actor *models.User, category *models.Category) bool {
	return ownerOrAdmin(actor, category.OwnerID)
}

func CanDeleteCategory(actor *models.User, category *models.Category) bool {
	return ownerOrAdmin(actor, category.OwnerID)
}

// CanCreateTask allows any authenticated user to create a task; ownership is
// assigned from the actor at creation time.
func CanCreateTask(actor *models.User) bool {
	return actor != nil
}

func CanViewTask(actor *models.User, task *models.Task) bool {
	return ownerOrAdmin(actor, task.OwnerID)
}

func CanUpdateTask(actor *models.User, task *models.Task) bool {
	return ownerOrAdmin(actor, task.OwnerID)
}

func CanDeleteTask(actor *models.User, task *models.Task) bool {
	return ownerOrAdmin(actor, task.OwnerID)
}
