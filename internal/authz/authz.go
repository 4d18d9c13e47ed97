// Package authz implements the per-row authorization policy for every
// table the API exposes. Each policy is a pure predicate over the
// caller and the row being touched; anything not explicitly granted is
// denied. Denied reads, updates, and deletes surface as the resource's
// not-found error so a caller can never learn that a forbidden row
// exists.
package authz

import (
	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
)

// Action is a row-level operation subject to policy.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource identifies a policy-protected table.
type Resource string

const (
	ResourceProfile            Resource = "profile"
	ResourceIncomeRecord       Resource = "income_record"
	ResourceExpenseRecord      Resource = "expense_record"
	ResourceSavingsGoal        Resource = "savings_goal"
	ResourceSavingsTransaction Resource = "savings_transaction"
	ResourceExpenseCategory    Resource = "expense_category"
	ResourceCurrencyRate       Resource = "currency_rate"
)

// Caller is the authorization context for one request: the
// authenticated user and the role read from their profile row at the
// start of the request. Role changes concurrent with a request take
// effect on the next request.
type Caller struct {
	UserID string
	Role   models.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

// Row carries the row attributes policies depend on. OwnerID is the
// owning user of the row itself, or of the parent goal for savings
// transactions (ownership there is transitive, never stored on the
// row).
type Row struct {
	OwnerID string
}

type predicate func(Caller, Row) bool

func ownerOnly(c Caller, r Row) bool { return r.OwnerID != "" && c.UserID == r.OwnerID }
func adminOnly(c Caller, r Row) bool { return c.IsAdmin() }
func anyone(c Caller, r Row) bool    { return true }
func ownerOrAdmin(c Caller, r Row) bool {
	return ownerOnly(c, r) || c.IsAdmin()
}

// policy is the operation table from the schema's row-level security
// rules. A missing entry means deny.
var policy = map[Resource]map[Action]predicate{
	ResourceProfile: {
		ActionRead:   ownerOrAdmin,
		ActionUpdate: ownerOrAdmin,
		// Direct creation is an admin escape hatch; ordinary profiles
		// are provisioned atomically with their user at registration.
		ActionCreate: adminOnly,
	},
	ResourceIncomeRecord: {
		ActionRead:   ownerOnly,
		ActionCreate: ownerOnly,
		ActionUpdate: ownerOnly,
		ActionDelete: ownerOnly,
	},
	ResourceExpenseRecord: {
		ActionRead:   ownerOnly,
		ActionCreate: ownerOnly,
		ActionUpdate: ownerOnly,
		ActionDelete: ownerOnly,
	},
	ResourceSavingsGoal: {
		ActionRead:   ownerOnly,
		ActionCreate: ownerOnly,
		ActionUpdate: ownerOnly,
		ActionDelete: ownerOnly,
	},
	ResourceSavingsTransaction: {
		ActionRead:   ownerOnly,
		ActionCreate: ownerOnly,
		// Deletes are granted to the goal owner so the balance
		// maintainer's reversal path is reachable by users, not only
		// by administrative cleanup.
		ActionDelete: ownerOnly,
	},
	ResourceExpenseCategory: {
		ActionRead:   anyone,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceCurrencyRate: {
		ActionRead:   anyone,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
}

// notFoundFor maps each resource to the error a denied read, update, or
// delete surfaces as.
var notFoundFor = map[Resource]*apperrors.AppError{
	ResourceProfile:            apperrors.ErrProfileNotFound,
	ResourceIncomeRecord:       apperrors.ErrIncomeNotFound,
	ResourceExpenseRecord:      apperrors.ErrExpenseNotFound,
	ResourceSavingsGoal:        apperrors.ErrGoalNotFound,
	ResourceSavingsTransaction: apperrors.ErrTransactionNotFound,
	ResourceExpenseCategory:    apperrors.ErrCategoryNotFound,
	ResourceCurrencyRate:       apperrors.ErrRateNotFound,
}

// Can reports whether caller may perform action on the given row.
// Unknown resources and un-granted actions are denied.
func Can(caller Caller, resource Resource, action Action, row Row) bool {
	actions, ok := policy[resource]
	if !ok {
		return false
	}
	pred, ok := actions[action]
	if !ok {
		return false
	}
	return pred(caller, row)
}

// Authorize checks the policy and converts a denial into the
// appropriate AppError: not-found for read/update/delete (no existence
// leak), forbidden for create.
func Authorize(caller Caller, resource Resource, action Action, row Row) error {
	if Can(caller, resource, action, row) {
		return nil
	}
	if action == ActionCreate {
		return apperrors.ErrForbidden
	}
	if nf, ok := notFoundFor[resource]; ok {
		return nf
	}
	return apperrors.ErrNotFound
}
