package requestpolicy

import (
	"testing"

	"github.com/stretchr/testify/require"
	"request-flow-backend/models"
	dbmodels "request-flow-backend/models/db"
)

func TestCanActOnRequest(t *testing.T) {
	rec := dbmodels.Request{
		CreatorID: "creator",
		Members: []dbmodels.RequestMember{
			{UserID: "current", Role: models.MemberRoleCurrentApprover},
			{UserID: "participant", Role: models.MemberRoleParticipant},
			{UserID: "recruiter", Role: models.MemberRoleRecruiter},
		},
		StageApprovers: []dbmodels.RequestStageApprover{
			{StageID: "a", UserID: "current"},
			{StageID: "b", UserID: "later"},
		},
	}
	user := func(id string) models.Principal {
		return models.Principal{UserID: id}
	}
	admin := models.Principal{UserID: "admin", IsAdmin: true}

	t.Run("view", func(t *testing.T) {
		for _, id := range []string{"creator", "current", "later", "participant", "recruiter"} {
			require.True(t, CanActOnRequest(user(id), rec, ActionView), id)
		}
		require.True(t, CanActOnRequest(admin, rec, ActionView))
		require.False(t, CanActOnRequest(user("stranger"), rec, ActionView))
		require.ErrorIs(t, Check(user("stranger"), rec, ActionView), models.ErrUnauthorized)
	})
	t.Run("approve only by current approver", func(t *testing.T) {
		require.True(t, CanActOnRequest(user("current"), rec, ActionApprove))
		require.False(t, CanActOnRequest(user("later"), rec, ActionApprove))
		require.False(t, CanActOnRequest(admin, rec, ActionApprove))
		require.ErrorIs(t, Check(user("later"), rec, ActionApprove), models.ErrNotAnApprover)
	})
	t.Run("reject and reopen by any snapshot approver", func(t *testing.T) {
		for _, action := range []Action{ActionReject, ActionReopen} {
			require.True(t, CanActOnRequest(user("later"), rec, action))
			require.True(t, CanActOnRequest(user("current"), rec, action))
			require.False(t, CanActOnRequest(user("participant"), rec, action))
		}
	})
	t.Run("admin only actions", func(t *testing.T) {
		for _, action := range []Action{ActionManageApprovers, ActionManageRecruiters} {
			require.True(t, CanActOnRequest(admin, rec, action))
			require.False(t, CanActOnRequest(user("current"), rec, action))
		}
	})
	t.Run("participants managed by members and approvers", func(t *testing.T) {
		for _, id := range []string{"current", "later", "participant", "recruiter"} {
			require.True(t, CanActOnRequest(user(id), rec, ActionManageParticipants), id)
		}
		require.False(t, CanActOnRequest(user("creator"), rec, ActionManageParticipants))
	})
	t.Run("anonymous is never allowed", func(t *testing.T) {
		require.False(t, CanActOnRequest(models.Principal{}, rec, ActionUpdateFields))
		require.True(t, CanActOnRequest(user("stranger"), rec, ActionUpdateFields))
	})
}
