package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	UsersModule    Module = "USERS"
	RequestModule  Module = "REQUEST"
	ApproverModule Module = "APPROVER"
	CommentModule  Module = "COMMENT"
	DictModule     Module = "DICT"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
	TeamPermission   Permission = "TEAM"
)
