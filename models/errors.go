package models

type ErrorKind int

const (
	// KindPrecondition нарушено условие операции, пользователь может исправить и повторить
	KindPrecondition ErrorKind = iota + 1
	KindUnauthorized
	KindNotFound
	KindConflict
)

// AppError ошибка предметной области с сообщением для пользователя
type AppError struct {
	Kind ErrorKind
	Msg  string
}

func (e *AppError) Error() string {
	return e.Msg
}

func newAppError(kind ErrorKind, msg string) *AppError {
	return &AppError{Kind: kind, Msg: msg}
}

var (
	ErrNoApproversConfigured    = newAppError(KindPrecondition, "Для этапа не настроены согласующие")
	ErrNotAnApprover            = newAppError(KindPrecondition, "Вы не являетесь согласующим на этом этапе заявки")
	ErrMustRetainOneApprover    = newAppError(KindPrecondition, "Перед удалением последнего согласующего этапа необходимо добавить другого согласующего")
	ErrApproverAlreadyExists    = newAppError(KindPrecondition, "Согласующий уже добавлен на этот этап")
	ErrApproverNotFound         = newAppError(KindNotFound, "Согласующий не найден в заявке")
	ErrParticipantAlreadyExists = newAppError(KindPrecondition, "Участник уже добавлен в заявку")
	ErrParticipantDoesNotExist  = newAppError(KindPrecondition, "Участник не найден в заявке")
	ErrRecruiterAlreadyExists   = newAppError(KindPrecondition, "Рекрутер уже добавлен в заявку")
	ErrRecruiterDoesNotExist    = newAppError(KindPrecondition, "Рекрутер не найден в заявке")
	ErrRequestNotPending        = newAppError(KindPrecondition, "Заявка не находится на согласовании")
	ErrRequestAlreadyPending    = newAppError(KindPrecondition, "Заявка уже находится на согласовании")
	ErrUnknownField             = newAppError(KindPrecondition, "Поле не относится к типу заявки")
	ErrWorkflowHasNoStages      = newAppError(KindPrecondition, "В процессе согласования нет этапов")
	ErrStageNotInWorkflow       = newAppError(KindPrecondition, "Этап не входит в процесс согласования заявки")
	ErrDuplicateStage           = newAppError(KindPrecondition, "Этап указан в процессе согласования несколько раз")
	ErrCanonicalStatusRename    = newAppError(KindPrecondition, "Системный статус заявки нельзя переименовать")
	ErrEmptyUser                = newAppError(KindPrecondition, "Не указан пользователь")
	ErrOptionsNotSupported      = newAppError(KindPrecondition, "Варианты значений доступны только для поля с выбором")
	ErrUnauthorized             = newAppError(KindUnauthorized, "Недостаточно прав для выполнения операции")
	ErrRequestNotFound          = newAppError(KindNotFound, "Заявка не найдена")
	ErrUserNotFound             = newAppError(KindNotFound, "Пользователь не найден")
	ErrDepartmentNotFound       = newAppError(KindNotFound, "Подразделение не найдено")
	ErrRequestTypeNotFound      = newAppError(KindNotFound, "Тип заявки не найден")
	ErrWorkflowNotFound         = newAppError(KindNotFound, "Процесс согласования не найден")
	ErrStageNotFound            = newAppError(KindNotFound, "Этап не найден")
	ErrFieldNotFound            = newAppError(KindNotFound, "Поле заявки не найдено")
	ErrStatusNotFound           = newAppError(KindNotFound, "Статус заявки не найден")
	ErrFieldOptionNotFound      = newAppError(KindNotFound, "Вариант значения поля не найден")
	ErrCommentNotFound          = newAppError(KindNotFound, "Комментарий не найден")
	ErrRequestBusy              = newAppError(KindConflict, "Заявка изменяется другим пользователем, повторите попытку")
	ErrDepartmentExists         = newAppError(KindConflict, "Подразделение уже существует")
	ErrUserExists               = newAppError(KindConflict, "Пользователь с такой почтой уже существует")
)
