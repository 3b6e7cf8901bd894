package models

// Канонические статусы заявки, ищутся по имени в справочнике статусов
const (
	RequestStatusPending  = "Pending"
	RequestStatusApproved = "Approved"
	RequestStatusRejected = "Rejected"
)

var CanonicalRequestStatuses = []string{
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusRejected,
}

var requestStatusHumanName = map[string]string{
	RequestStatusPending:  "На согласовании",
	RequestStatusApproved: "Согласована",
	RequestStatusRejected: "Отклонена",
}

func RequestStatusToHuman(name string) string {
	if human, exist := requestStatusHumanName[name]; exist {
		return human
	}
	return name
}

func IsCanonicalRequestStatus(name string) bool {
	_, ok := requestStatusHumanName[name]
	return ok
}
