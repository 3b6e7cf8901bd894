package dbmodels

type User struct {
	BaseModel
	Name                               string `gorm:"type:varchar(255)"`
	Email                              string `gorm:"type:varchar(255);uniqueIndex"`
	Image                              string
	IsAdmin                            bool
	EmailWhenRequestCreated            bool `gorm:"default:true"`
	EmailWhenRequestCommentedOn        bool `gorm:"default:true"`
	EmailWhenRequestStageChanged       bool `gorm:"default:true"`
	EmailWhenAwaitingMyRequestApproval bool `gorm:"default:true"`
}

func (u User) GetName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
