// Package access holds the authorization predicates for boards and tasks.
// Every predicate is a pure function over an entity and a caller identity;
// lifecycle operations call them explicitly before mutating anything, so the
// control flow and failure point stay visible and testable in isolation.
package access

import "github.com/kairyu/kanban-board-api/internal/models"

// CanAccessBoard reports whether the caller may read a board: admins and the
// board's creator only. Holding an assigned task on the board deliberately
// does NOT grant board access; that wider set is served by the separate
// accessible-boards listing.
func CanAccessBoard(board *models.Board, identity models.Identity) bool {
	return identity.IsAdmin() || board.CreatedBy == identity.Name
}

// CanModifyBoard reports whether the caller may update or delete a board.
// Create, update and delete share the ownership test with CanAccessBoard.
func CanModifyBoard(board *models.Board, identity models.Identity) bool {
	return CanAccessBoard(board, identity)
}

// CanAccessTask reports whether the caller may read a task. board is the
// task's board and may be nil when it could not be resolved.
func CanAccessTask(task *models.Task, board *models.Board, identity models.Identity) bool {
	if identity.IsAdmin() {
		return true
	}
	if task.CreatedBy == identity.Name {
		return true
	}
	if task.AssignedTo != "" && task.AssignedTo == identity.Name {
		return true
	}
	return board != nil && board.CreatedBy == identity.Name
}

// CanModifyTask reports whether the caller may mutate a task. Restricted
// callers qualify only when the task is assigned to them, and even then the
// lifecycle limits them to status changes.
func CanModifyTask(task *models.Task, identity models.Identity) bool {
	if identity.IsAdmin() {
		return true
	}
	return task.AssignedTo != "" && task.AssignedTo == identity.Name
}

// CanCreateTask reports whether the caller may create tasks. Task creation
// is an administrative privilege regardless of board ownership.
func CanCreateTask(identity models.Identity) bool {
	return identity.IsAdmin()
}
