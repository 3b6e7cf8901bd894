package requestflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"request-flow-backend/models"
	dbmodels "request-flow-backend/models/db"
)

func link(stageID string, order int) dbmodels.StageInWorkflow {
	return dbmodels.StageInWorkflow{WorkflowID: "wf", StageID: stageID, Order: order}
}

func approver(stageID, userID string) dbmodels.RequestStageApprover {
	return dbmodels.RequestStageApprover{StageID: stageID, UserID: userID}
}

func event(action models.EventAction, userID, value string, at time.Time) dbmodels.RequestEvent {
	return dbmodels.RequestEvent{
		BaseModel: dbmodels.BaseModel{CreatedAt: at},
		UserID:    userID,
		Action:    action,
		Value:     value,
	}
}

func TestBuildStageLinks(t *testing.T) {
	t.Run("order is contiguous from zero", func(t *testing.T) {
		links, err := BuildStageLinks("wf", []string{"c", "a", "b"})
		require.NoError(t, err)
		require.Len(t, links, 3)
		for idx, item := range links {
			require.Equal(t, idx, item.Order)
			require.Equal(t, "wf", item.WorkflowID)
		}
		require.Equal(t, []string{"c", "a", "b"}, StageIDs(links))
	})
	t.Run("duplicates rejected", func(t *testing.T) {
		_, err := BuildStageLinks("wf", []string{"a", "b", "a"})
		require.ErrorIs(t, err, models.ErrDuplicateStage)
	})
	t.Run("empty rejected", func(t *testing.T) {
		_, err := BuildStageLinks("wf", nil)
		require.ErrorIs(t, err, models.ErrWorkflowHasNoStages)
	})
}

func TestLocate(t *testing.T) {
	links := []dbmodels.StageInWorkflow{link("b", 1), link("c", 2), link("a", 0)}

	first := FirstStage(links)
	require.NotNil(t, first)
	require.Equal(t, "a", first.StageID)

	current, next := Locate(links, "a")
	require.Equal(t, "a", current.StageID)
	require.Equal(t, "b", next.StageID)

	current, next = Locate(links, "c")
	require.Equal(t, "c", current.StageID)
	require.Nil(t, next)

	current, next = Locate(links, "missing")
	require.Nil(t, current)
	require.Nil(t, next)

	require.Nil(t, FirstStage(nil))
}

func TestApproversAtStage(t *testing.T) {
	snapshot := []dbmodels.RequestStageApprover{
		approver("a", "u1"),
		approver("b", "u2"),
		approver("a", "u3"),
		approver("a", "u1"),
	}
	require.Equal(t, []string{"u1", "u3"}, ApproversAtStage(snapshot, "a"))
	require.Equal(t, []string{"u2"}, ApproversAtStage(snapshot, "b"))
	require.Empty(t, ApproversAtStage(snapshot, "c"))

	require.True(t, IsSnapshotApprover(snapshot, "u2"))
	require.False(t, IsSnapshotApprover(snapshot, "u9"))
}

func TestWithApprover(t *testing.T) {
	backing := make([]dbmodels.RequestStageApprover, 1, 4)
	backing[0] = approver("a", "u1")
	spare := backing[:2]

	result := WithApprover(backing, approver("a", "u2"))
	require.Equal(t, []string{"u1", "u2"}, ApproversAtStage(result, "a"))
	require.Len(t, backing, 1)
	require.Empty(t, spare[1].UserID)
}

func TestSnapshotFromDepartment(t *testing.T) {
	config := []dbmodels.DepartmentStageApprover{
		{DepartmentID: "d", StageID: "a", UserID: "u1"},
		{DepartmentID: "d", StageID: "b", UserID: "u2"},
		{DepartmentID: "d", StageID: "other", UserID: "u3"},
	}
	snapshot := SnapshotFromDepartment("r1", config, []string{"a", "b"})
	require.Len(t, snapshot, 2)
	for _, item := range snapshot {
		require.Equal(t, "r1", item.RequestID)
		require.NotEqual(t, "other", item.StageID)
	}
}

func TestVisibleDecisions(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	events := []dbmodels.RequestEvent{
		event(models.EventActionApprove, "u1", "a", base),
		event(models.EventActionReject, "u2", "b", base.Add(time.Minute)),
		event(models.EventActionReopen, "u2", "b", base.Add(2*time.Minute)),
		event(models.EventActionUpdate, "u3", "[]", base.Add(3*time.Minute)),
		event(models.EventActionApprove, "u1", "a", base.Add(4*time.Minute)),
	}
	t.Run("decisions before the last reopen are hidden", func(t *testing.T) {
		visible := VisibleDecisions(events)
		require.Len(t, visible, 1)
		require.Equal(t, base.Add(4*time.Minute), visible[0].CreatedAt)

		require.NotNil(t, StageDecision(visible, "a", "u1"))
		require.Nil(t, StageDecision(visible, "b", "u2"))
	})
	t.Run("without reopen every decision is visible", func(t *testing.T) {
		visible := VisibleDecisions(events[:2])
		require.Len(t, visible, 2)
		decision := StageDecision(visible, "b", "u2")
		require.NotNil(t, decision)
		require.Equal(t, models.EventActionReject, decision.Action)
	})
}

func TestProgress(t *testing.T) {
	links := []dbmodels.StageInWorkflow{link("a", 0), link("b", 1), link("c", 2)}
	states := func(list []StageProgress) []StageState {
		result := []StageState{}
		for _, item := range list {
			result = append(result, item.State)
		}
		return result
	}
	require.Equal(t, []StageState{StageStateApproved, StageStateCurrent, StageStateUpcoming},
		states(Progress(links, "b", models.RequestStatusPending)))
	require.Equal(t, []StageState{StageStateApproved, StageStateRejected, StageStateUpcoming},
		states(Progress(links, "b", models.RequestStatusRejected)))
	require.Equal(t, []StageState{StageStateApproved, StageStateApproved, StageStateApproved},
		states(Progress(links, "c", models.RequestStatusApproved)))
}

func TestInvolvedUsers(t *testing.T) {
	u1 := &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "u1"}}
	u2 := &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "u2"}}
	u3 := &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "u3"}}
	rec := dbmodels.Request{
		Creator: u1,
		Members: []dbmodels.RequestMember{
			{UserID: "u2", Role: models.MemberRoleRecruiter, User: u2},
			{UserID: "u1", Role: models.MemberRoleParticipant, User: u1},
			{UserID: "u3", Role: models.MemberRoleCurrentApprover, User: u3},
		},
		StageApprovers: []dbmodels.RequestStageApprover{
			{StageID: "a", UserID: "u3", User: u3},
			{StageID: "b", UserID: "u2", User: u2},
		},
	}
	ids := []string{}
	for _, user := range InvolvedUsers(rec) {
		ids = append(ids, user.ID)
	}
	require.Equal(t, []string{"u2", "u1", "u3"}, ids)
}
