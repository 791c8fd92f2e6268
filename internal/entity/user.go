package entity

import "github.com/lmxriel/petcare/pkg/constant"

// User represents a registered account (pet owner or admin)
type User struct {
	Id        int64         `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Email     string        `json:"email" gorm:"column:email;uniqueIndex"`
	Password  string        `json:"-" gorm:"column:password"`
	FirstName string        `json:"first_name" gorm:"column:first_name"`
	LastName  string        `json:"last_name" gorm:"column:last_name"`
	Role      constant.Role `json:"role" gorm:"column:role"`
	Birthdate string        `json:"birthdate" gorm:"column:birthdate"` // ISO calendar date
	Phone     string        `json:"phone" gorm:"column:phone"`
	Address   string        `json:"address" gorm:"column:address"`
	CreatedAt int64         `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt int64         `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// UserInfo represents public user info (without password)
type UserInfo struct {
	Id        int64         `json:"user_id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Role      constant.Role `json:"role"`
	Birthdate string        `json:"birthdate,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Address   string        `json:"address,omitempty"`
	CreatedAt int64         `json:"created_at"`
}

// ToUserInfo converts User to UserInfo
func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		Id:        u.Id,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Birthdate: u.Birthdate,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}

// AgeAt returns the user's age in whole years at the given reference date.
// The reference is an ISO calendar date; an unparseable birthdate counts
// as age 0 so underage checks fail closed.
func (u *User) AgeAt(refDate string) int {
	birth, err := ParseDate(u.Birthdate)
	if err != nil {
		return 0
	}
	ref, err := ParseDate(refDate)
	if err != nil {
		return 0
	}

	years := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
