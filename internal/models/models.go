package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Identifier   string    `gorm:"uniqueIndex;not null"      json:"identifier"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Role         string    `gorm:"not null;index"            json:"role"`
	FullName     string    `                                 json:"full_name"`
	Active       bool      `gorm:"not null"                  json:"active"`
	CreatedAt    time.Time `                                 json:"created_at"`
	UpdatedAt    time.Time `                                 json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type StudentProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"        json:"-"`
	AccountID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	GradeLevel string    `                                   json:"grade_level"`
	School     string    `                                   json:"school"`
	ParentName string    `                                   json:"parent_name"`
}

func (p *StudentProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type TeacherProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"        json:"-"`
	AccountID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	Subjects      string    `                                   json:"-"`
	Qualification string    `                                   json:"qualification"`
	Bio           string    `                                   json:"bio"`
	HourlyRate    float64   `gorm:"check:hourly_rate >= 0"      json:"hourly_rate"`
}

func (p *TeacherProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RoleProfile holds at most one role-specific sub-record.
type RoleProfile struct {
	Student *StudentProfile
	Teacher *TeacherProfile
}

func (p *RoleProfile) Empty() bool {
	return p == nil || (p.Student == nil && p.Teacher == nil)
}

func All() []any {
	return []any{&Account{}, &StudentProfile{}, &TeacherProfile{}}
}
