package notify

import (
	"strings"

	"request-flow-backend/models"
	dbmodels "request-flow-backend/models/db"
)

type preferenceFunc func(user dbmodels.User) bool

func wantsStageChanged(user dbmodels.User) bool { return user.EmailWhenRequestStageChanged }

func wantsCommentedOn(user dbmodels.User) bool { return user.EmailWhenRequestCommentedOn }

func wantsAwaitingApproval(user dbmodels.User) bool { return user.EmailWhenAwaitingMyRequestApproval }

func wantsCreated(user dbmodels.User) bool { return user.EmailWhenRequestCreated }

var preferenceByKind = map[models.NotificationKind]preferenceFunc{
	models.NotifyRequestCreated:      wantsCreated,
	models.NotifyRequestStageChanged: wantsStageChanged,
	models.NotifyRequestApproved:     wantsStageChanged,
	models.NotifyRequestRejected:     wantsStageChanged,
	models.NotifyRequestReopened:     wantsStageChanged,
	models.NotifyRequestCommented:    wantsCommentedOn,
}

// Recipients адреса для уведомления без повторов. При переходе на следующий этап
// к заинтересованным пользователям добавляются согласующие нового этапа.
func Recipients(kind models.NotificationKind, involved, nextApprovers []dbmodels.User) []string {
	result := []string{}
	seen := map[string]bool{}
	add := func(users []dbmodels.User, wants preferenceFunc) {
		for _, user := range users {
			email := strings.TrimSpace(user.Email)
			if email == "" || !wants(user) {
				continue
			}
			key := strings.ToLower(email)
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, email)
		}
	}
	wants, ok := preferenceByKind[kind]
	if !ok {
		return result
	}
	add(involved, wants)
	if kind == models.NotifyRequestStageChanged {
		add(nextApprovers, wantsAwaitingApproval)
	}
	return result
}
