package entity

import "github.com/lmxriel/petcare/pkg/constant"

// Appointment represents a booked veterinary visit
type Appointment struct {
	Id         int64                    `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserId     int64                    `json:"user_id" gorm:"column:user_id;index"`
	Service    constant.AppointmentType `json:"service" gorm:"column:service"`
	Date       string                   `json:"date" gorm:"column:date;index:idx_date_time,priority:1"` // YYYY-MM-DD
	Time       string                   `json:"time" gorm:"column:time;index:idx_date_time,priority:2"` // HH:MM
	Status     constant.ReviewStatus    `json:"status" gorm:"column:status"`
	ReviewedAt int64                    `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	CreatedAt  int64                    `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt  int64                    `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for Appointment
func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentWithUser joins the requester for the admin schedule view
type AppointmentWithUser struct {
	Appointment
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
