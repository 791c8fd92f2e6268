package entity

import "github.com/lmxriel/petcare/pkg/constant"

// Pet represents a pet listed for adoption
type Pet struct {
	Id            int64              `json:"pet_id" gorm:"column:id;primaryKey;autoIncrement"`
	Name          string             `json:"name" gorm:"column:name"`
	Breed         string             `json:"breed" gorm:"column:breed"`
	Size          string             `json:"size" gorm:"column:size"`
	Gender        string             `json:"gender" gorm:"column:gender"`
	Weight        string             `json:"weight" gorm:"column:weight"`
	Color         string             `json:"color" gorm:"column:color"`
	Status        constant.PetStatus `json:"status" gorm:"column:status"`
	MedicalStatus string             `json:"medical_status" gorm:"column:medical_status"`
	Image         string             `json:"image" gorm:"column:image"`
	Deleted       bool               `json:"-" gorm:"column:deleted"`
	CreatedAt     int64              `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt     int64              `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for Pet
func (Pet) TableName() string {
	return "pets"
}
