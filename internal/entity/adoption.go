package entity

import "github.com/lmxriel/petcare/pkg/constant"

// AdoptionRequest represents a pet owner's application to adopt a pet
type AdoptionRequest struct {
	Id         int64                 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserId     int64                 `json:"user_id" gorm:"column:user_id;index"`
	PetId      int64                 `json:"pet_id" gorm:"column:pet_id;index"`
	Purpose    string                `json:"purpose_of_adoption" gorm:"column:purpose"`
	Status     constant.ReviewStatus `json:"status" gorm:"column:status"`
	ReviewedAt int64                 `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	CreatedAt  int64                 `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt  int64                 `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for AdoptionRequest
func (AdoptionRequest) TableName() string {
	return "adoption_requests"
}

// AdoptionWithDetail joins the applicant and pet for the admin review list
type AdoptionWithDetail struct {
	AdoptionRequest
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	PetName   string `json:"pet_name"`
	PetBreed  string `json:"pet_breed"`
}
