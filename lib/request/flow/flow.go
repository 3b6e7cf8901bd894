package requestflow

import (
	"slices"
	"sort"
	"time"

	"request-flow-backend/models"
	dbmodels "request-flow-backend/models/db"
)

type StageState string

const (
	StageStateApproved StageState = "APPROVED"
	StageStateCurrent  StageState = "CURRENT"
	StageStateRejected StageState = "REJECTED"
	StageStateUpcoming StageState = "UPCOMING"
)

// BuildStageLinks порядок этапа равен его позиции в списке
func BuildStageLinks(workflowID string, stageIDs []string) ([]dbmodels.StageInWorkflow, error) {
	if len(stageIDs) == 0 {
		return nil, models.ErrWorkflowHasNoStages
	}
	result := make([]dbmodels.StageInWorkflow, 0, len(stageIDs))
	seen := map[string]bool{}
	for idx, stageID := range stageIDs {
		if seen[stageID] {
			return nil, models.ErrDuplicateStage
		}
		seen[stageID] = true
		result = append(result, dbmodels.StageInWorkflow{
			WorkflowID: workflowID,
			StageID:    stageID,
			Order:      idx,
		})
	}
	return result, nil
}

func sortedLinks(links []dbmodels.StageInWorkflow) []dbmodels.StageInWorkflow {
	sorted := slices.Clone(links)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// FirstStage этап с минимальным порядком, nil для пустого процесса
func FirstStage(links []dbmodels.StageInWorkflow) *dbmodels.StageInWorkflow {
	if len(links) == 0 {
		return nil
	}
	sorted := sortedLinks(links)
	return &sorted[0]
}

// Locate находит текущий этап и этап с порядком на единицу больше
func Locate(links []dbmodels.StageInWorkflow, stageID string) (current, next *dbmodels.StageInWorkflow) {
	for idx := range links {
		if links[idx].StageID == stageID {
			current = &links[idx]
			break
		}
	}
	if current == nil {
		return nil, nil
	}
	for idx := range links {
		if links[idx].Order == current.Order+1 {
			next = &links[idx]
			break
		}
	}
	return current, next
}

func StageIDs(links []dbmodels.StageInWorkflow) []string {
	sorted := sortedLinks(links)
	result := make([]string, 0, len(sorted))
	for _, link := range sorted {
		result = append(result, link.StageID)
	}
	return result
}

// ApproversAtStage текущие согласующие вычисляются только из копии согласующих заявки
func ApproversAtStage(snapshot []dbmodels.RequestStageApprover, stageID string) []string {
	result := []string{}
	for _, approver := range snapshot {
		if approver.StageID == stageID && !slices.Contains(result, approver.UserID) {
			result = append(result, approver.UserID)
		}
	}
	return result
}

func IsSnapshotApprover(snapshot []dbmodels.RequestStageApprover, userID string) bool {
	for _, approver := range snapshot {
		if approver.UserID == userID {
			return true
		}
	}
	return false
}

// WithApprover новая копия согласующих с добавленной записью, исходный срез не меняется
func WithApprover(snapshot []dbmodels.RequestStageApprover, approver dbmodels.RequestStageApprover) []dbmodels.RequestStageApprover {
	return append(slices.Clone(snapshot), approver)
}

// SnapshotFromDepartment копирует настройку подразделения по этапам процесса
func SnapshotFromDepartment(requestID string, config []dbmodels.DepartmentStageApprover, stageIDs []string) []dbmodels.RequestStageApprover {
	result := []dbmodels.RequestStageApprover{}
	for _, item := range config {
		if !slices.Contains(stageIDs, item.StageID) {
			continue
		}
		result = append(result, dbmodels.RequestStageApprover{
			RequestRef: dbmodels.RequestRef{RequestID: requestID},
			StageID:    item.StageID,
			UserID:     item.UserID,
		})
	}
	return result
}

// VisibleDecisions решения согласующих, не перекрытые последним повторным открытием
func VisibleDecisions(events []dbmodels.RequestEvent) []dbmodels.RequestEvent {
	var reopenedAt time.Time
	for _, event := range events {
		if event.Action == models.EventActionReopen && event.CreatedAt.After(reopenedAt) {
			reopenedAt = event.CreatedAt
		}
	}
	result := []dbmodels.RequestEvent{}
	for _, event := range events {
		if !event.Action.IsDecision() {
			continue
		}
		if event.CreatedAt.Before(reopenedAt) {
			continue
		}
		result = append(result, event)
	}
	return result
}

// StageDecision последнее видимое решение пользователя на этапе
func StageDecision(visible []dbmodels.RequestEvent, stageID, userID string) *dbmodels.RequestEvent {
	var result *dbmodels.RequestEvent
	for idx := range visible {
		event := visible[idx]
		if event.UserID != userID || event.Value != stageID {
			continue
		}
		if result == nil || !event.CreatedAt.Before(result.CreatedAt) {
			result = &visible[idx]
		}
	}
	return result
}

type StageProgress struct {
	Link  dbmodels.StageInWorkflow
	State StageState
}

// Progress состояние каждого этапа процесса относительно текущего этапа заявки
func Progress(links []dbmodels.StageInWorkflow, currentStageID, statusName string) []StageProgress {
	sorted := sortedLinks(links)
	current, _ := Locate(sorted, currentStageID)
	result := make([]StageProgress, 0, len(sorted))
	for _, link := range sorted {
		state := StageStateUpcoming
		switch {
		case statusName == models.RequestStatusApproved:
			state = StageStateApproved
		case current == nil:
		case link.Order < current.Order:
			state = StageStateApproved
		case link.Order == current.Order && statusName == models.RequestStatusRejected:
			state = StageStateRejected
		case link.Order == current.Order:
			state = StageStateCurrent
		}
		result = append(result, StageProgress{Link: link, State: state})
	}
	return result
}

// InvolvedUsers рекрутеры, участники, согласующие всех этапов и автор заявки без повторов
func InvolvedUsers(rec dbmodels.Request) []dbmodels.User {
	result := []dbmodels.User{}
	seen := map[string]bool{}
	add := func(user *dbmodels.User) {
		if user == nil || user.ID == "" || seen[user.ID] {
			return
		}
		seen[user.ID] = true
		result = append(result, *user)
	}
	for _, member := range rec.Members {
		if member.Role == models.MemberRoleRecruiter {
			add(member.User)
		}
	}
	for _, member := range rec.Members {
		if member.Role == models.MemberRoleParticipant {
			add(member.User)
		}
	}
	for _, approver := range rec.StageApprovers {
		add(approver.User)
	}
	add(rec.Creator)
	return result
}
