package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to AssignmentStatus
		want     bool
	}{
		{AssignmentPending, AssignmentAccepted, true},
		{AssignmentPending, AssignmentDeclined, true},
		{AssignmentAccepted, AssignmentCompleted, true},

		// 非法流转
		{AssignmentPending, AssignmentCompleted, false},
		{AssignmentAccepted, AssignmentDeclined, false},
		{AssignmentAccepted, AssignmentPending, false},
		{AssignmentDeclined, AssignmentAccepted, false},
		{AssignmentCompleted, AssignmentAccepted, false},
		{AssignmentCompleted, AssignmentPending, false},
		{AssignmentPending, AssignmentPending, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v，期望 %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	if AssignmentPending.Terminal() || AssignmentAccepted.Terminal() {
		t.Error("pending/accepted 不应为终态")
	}
	if !AssignmentDeclined.Terminal() || !AssignmentCompleted.Terminal() {
		t.Error("declined/completed 应为终态")
	}
}

func TestTransitionActorRole(t *testing.T) {
	if got := TransitionActorRole(AssignmentAccepted); got != RoleRecruiter {
		t.Errorf("accepted 应由猎头发起，实际 %s", got)
	}
	if got := TransitionActorRole(AssignmentDeclined); got != RoleRecruiter {
		t.Errorf("declined 应由猎头发起，实际 %s", got)
	}
	if got := TransitionActorRole(AssignmentCompleted); got != RoleEmployer {
		t.Errorf("completed 应由雇主发起，实际 %s", got)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"employer", RoleEmployer, true},
		{"Employer", RoleEmployer, true},
		{"  RECRUITER  ", RoleRecruiter, true},
		{"candidate", RoleCandidate, true},
		{"admin", RoleAdmin, true},
		{"hr", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRole(%q) = (%s, %v)，期望 (%s, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAssignmentParty(t *testing.T) {
	a := &Assignment{EmployerID: "emp-1", RecruiterID: "rec-1"}

	if !a.IsParty("emp-1") || !a.IsParty("rec-1") {
		t.Error("雇主和猎头都应为相关方")
	}
	if a.IsParty("other") {
		t.Error("第三方不应为相关方")
	}

	if got := a.CounterpartyID("emp-1"); got != "rec-1" {
		t.Errorf("雇主的对手方应为猎头，实际 %s", got)
	}
	if got := a.CounterpartyID("rec-1"); got != "emp-1" {
		t.Errorf("猎头的对手方应为雇主，实际 %s", got)
	}
}
