// Package authz decides whether a principal may perform an action on a
// target. Decisions are computed from the principal's role and the target's
// ownership alone; the package never touches the database, so callers must
// load targets before asking.
package authz

import (
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionViewProject   Action = "project:view"
	ActionAddTask       Action = "project:add_task"
	ActionCompleteTask  Action = "project:complete_task"
	ActionCreateProject Action = "project:create"
	ActionListUsers     Action = "user:list"
	ActionEditUser      Action = "user:edit"
	ActionDeleteUser    Action = "user:delete"
	ActionToggleRole    Action = "user:toggle_role"
	ActionViewStats     Action = "stats:view"
)

// Effect is the outcome of an authorization decision.
type Effect int

const (
	// Deny blocks the action; the caller maps it to an access-denied outcome.
	Deny Effect = iota
	// Permit allows the action.
	Permit
	// Warn blocks the action without treating it as a violation. Used for
	// self-action guards: an admin targeting their own account gets a
	// warning, not a forbidden response.
	Warn
)

// Decision is the result of Authorize.
type Decision struct {
	Effect Effect
	Reason string
}

// Permitted reports whether the action may proceed.
func (d Decision) Permitted() bool {
	return d.Effect == Permit
}

var (
	permit = Decision{Effect: Permit}

	forbidden = Decision{Effect: Deny, Reason: "forbidden"}
)

func warn(reason string) Decision {
	return Decision{Effect: Warn, Reason: reason}
}

// Target carries the entities an action operates on. Only the fields relevant
// to the action need to be set: Project for project- and task-scoped actions
// (task actions resolve ownership through the parent project), TargetUser for
// user management, AssigneeID for project creation.
type Target struct {
	Project    *models.Project
	TargetUser *models.User
	AssigneeID uint64
}

// Authorize evaluates whether principal may perform action on target.
// Admins are permitted everything except actions against their own account
// (deleting themselves, changing their own role), which yield Warn.
func Authorize(principal *models.User, action Action, target Target) Decision {
	if principal == nil {
		return forbidden
	}

	if principal.IsAdmin() {
		return authorizeAdmin(principal, action, target)
	}

	switch action {
	case ActionViewProject, ActionAddTask, ActionCompleteTask:
		if target.Project != nil && target.Project.OwnerID == principal.ID {
			return permit
		}
		return forbidden

	case ActionCreateProject:
		// Anyone may create a project, but only for themselves.
		if target.AssigneeID == 0 || target.AssigneeID == principal.ID {
			return permit
		}
		return forbidden

	case ActionListUsers, ActionEditUser, ActionDeleteUser, ActionToggleRole, ActionViewStats:
		return forbidden
	}

	return forbidden
}

func authorizeAdmin(principal *models.User, action Action, target Target) Decision {
	switch action {
	case ActionDeleteUser:
		if target.TargetUser != nil && target.TargetUser.ID == principal.ID {
			return warn("you cannot delete your own account")
		}
	case ActionToggleRole:
		if target.TargetUser != nil && target.TargetUser.ID == principal.ID {
			return warn("you cannot change your own role")
		}
	}
	return permit
}
