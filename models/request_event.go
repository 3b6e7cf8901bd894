package models

type EventAction string

const (
	EventActionApprove EventAction = "APPROVE"
	EventActionReject  EventAction = "REJECT"
	EventActionReopen  EventAction = "REOPEN"
	EventActionUpdate  EventAction = "UPDATE"
)

var eventActionHumanName = map[EventAction]string{
	EventActionApprove: "Согласовано",
	EventActionReject:  "Отклонено",
	EventActionReopen:  "Открыто повторно",
	EventActionUpdate:  "Изменены поля",
}

func (a EventAction) ToHuman() string {
	if human, exist := eventActionHumanName[a]; exist {
		return human
	}
	return string(a)
}

// IsDecision действие согласующего по этапу
func (a EventAction) IsDecision() bool {
	return a == EventActionApprove || a == EventActionReject
}
