package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RequestRef ссылка на заявку для дочерних записей
type RequestRef struct {
	RequestID string `gorm:"type:varchar(36);index"`
}

func (r RequestRef) Validate() error {
	if r.RequestID == "" {
		return errors.New("отсутствует ссылка на заявку")
	}
	return nil
}
