package audit

import (
	"fmt"
	"strconv"
)

// CheckEvent records a gate evaluation of a declared requirement.
type CheckEvent struct {
	UserID  uint
	RoleID  int64
	Module  string
	Action  string
	Allowed bool
}

func (e CheckEvent) MessageID() string { return "check" }

func (e CheckEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e CheckEvent) Message() string {
	outcome := "permitted"
	if !e.Allowed {
		outcome = "denied"
	}
	return fmt.Sprintf("user %d (role %d) %s %s on %s", e.UserID, e.RoleID, outcome, e.Action, e.Module)
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Allowed {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatUint(uint64(e.UserID), 10),
			"role": strconv.FormatInt(e.RoleID, 10),
		},
		SDIDAction: {
			"operation": e.Action,
			"module":    e.Module,
			"result":    result,
		},
	}
}

// MatrixReplaceEvent records a bulk replacement of a role's grant set.
type MatrixReplaceEvent struct {
	ActingUserID uint
	RoleID       uint
	GrantCount   int
	SkippedCount int
}

func (e MatrixReplaceEvent) MessageID() string { return "matrix" }

func (e MatrixReplaceEvent) Severity() Severity { return SeverityNotice }

func (e MatrixReplaceEvent) Message() string {
	return fmt.Sprintf("user %d replaced grants for role %d (%d grants, %d skipped)",
		e.ActingUserID, e.RoleID, e.GrantCount, e.SkippedCount)
}

func (e MatrixReplaceEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatUint(uint64(e.ActingUserID), 10),
		},
		SDIDSubject: {
			"role":    strconv.FormatUint(uint64(e.RoleID), 10),
			"grants":  strconv.Itoa(e.GrantCount),
			"skipped": strconv.Itoa(e.SkippedCount),
		},
	}
}

// RoleEvent records a role identity change (create, update, delete).
type RoleEvent struct {
	ActingUserID uint
	RoleID       uint
	RoleName     string
	Operation    string
}

func (e RoleEvent) MessageID() string { return "role" }

func (e RoleEvent) Severity() Severity { return SeverityNotice }

func (e RoleEvent) Message() string {
	return fmt.Sprintf("user %d %sd role %d (%s)", e.ActingUserID, e.Operation, e.RoleID, e.RoleName)
}

func (e RoleEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatUint(uint64(e.ActingUserID), 10),
		},
		SDIDSubject: {
			"role":      strconv.FormatUint(uint64(e.RoleID), 10),
			"name":      e.RoleName,
			"operation": e.Operation,
		},
	}
}

// AuthnEvent records a login attempt.
type AuthnEvent struct {
	Email   string
	Success bool
}

func (e AuthnEvent) MessageID() string { return "authn" }

func (e AuthnEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthnEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Email)
	}
	return fmt.Sprintf("%s failed to authenticate", e.Email)
}

func (e AuthnEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"login":  e.Email,
			"result": result,
		},
	}
}
