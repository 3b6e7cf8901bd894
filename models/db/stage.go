package dbmodels

type Stage struct {
	BaseModel
	Name string `gorm:"type:varchar(255)"`
}

type Workflow struct {
	BaseModel
	Name   string            `gorm:"type:varchar(255)"`
	Stages []StageInWorkflow `gorm:"foreignKey:WorkflowID"`
}

// StageInWorkflow позиция этапа в процессе согласования, order совпадает с индексом в списке этапов
type StageInWorkflow struct {
	BaseModel
	WorkflowID string `gorm:"type:varchar(36);uniqueIndex:idx_workflow_stage;uniqueIndex:idx_workflow_order"`
	StageID    string `gorm:"type:varchar(36);uniqueIndex:idx_workflow_stage"`
	Order      int    `gorm:"uniqueIndex:idx_workflow_order"`
	Stage      *Stage `gorm:"foreignKey:StageID"`
}

func (s StageInWorkflow) GetStageName() string {
	if s.Stage == nil {
		return ""
	}
	return s.Stage.Name
}
