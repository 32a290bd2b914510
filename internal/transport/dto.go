package transport

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/atlas_derslik/internal/models"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type RegisterRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
	Role       string `json:"role"`
	FullName   string `json:"full_name"`

	GradeLevel string `json:"grade_level"`
	School     string `json:"school"`
	ParentName string `json:"parent_name"`

	Subjects      []string `json:"subjects"`
	Qualification string   `json:"qualification"`
	Bio           string   `json:"bio"`
	HourlyRate    float64  `json:"hourly_rate"`
}

type AccountSummary struct {
	ID         uuid.UUID `json:"id"`
	Identifier string    `json:"identifier"`
	Role       string    `json:"role"`
}

func SummaryOf(a *models.Account) AccountSummary {
	return AccountSummary{ID: a.ID, Identifier: a.Identifier, Role: a.Role}
}

type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Account   AccountSummary `json:"account"`
}

type StudentDetails struct {
	GradeLevel string `json:"grade_level"`
	School     string `json:"school"`
	ParentName string `json:"parent_name"`
}

type TeacherDetails struct {
	Subjects      []string `json:"subjects"`
	Qualification string   `json:"qualification"`
	Bio           string   `json:"bio"`
	HourlyRate    float64  `json:"hourly_rate"`
}

type AccountProfile struct {
	AccountSummary
	FullName  string          `json:"full_name"`
	CreatedAt time.Time       `json:"created_at"`
	Student   *StudentDetails `json:"student,omitempty"`
	Teacher   *TeacherDetails `json:"teacher,omitempty"`
}

func ProfileOf(a *models.Account, rp *models.RoleProfile) *AccountProfile {
	out := &AccountProfile{
		AccountSummary: SummaryOf(a),
		FullName:       a.FullName,
		CreatedAt:      a.CreatedAt,
	}
	if rp == nil {
		return out
	}
	if s := rp.Student; s != nil {
		out.Student = &StudentDetails{GradeLevel: s.GradeLevel, School: s.School, ParentName: s.ParentName}
	}
	if t := rp.Teacher; t != nil {
		out.Teacher = &TeacherDetails{
			Subjects:      SplitSubjects(t.Subjects),
			Qualification: t.Qualification,
			Bio:           t.Bio,
			HourlyRate:    t.HourlyRate,
		}
	}
	return out
}

var ErrSubjectSeparator = errors.New("subject must not contain a comma")

// JoinSubjects packs subjects into the stored comma-separated column.
func JoinSubjects(subjects []string) (string, error) {
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, ",") {
			return "", fmt.Errorf("%q: %w", s, ErrSubjectSeparator)
		}
		out = append(out, s)
	}
	return strings.Join(out, ","), nil
}

func SplitSubjects(v string) []string {
	if v == "" {
		return []string{}
	}
	return strings.Split(v, ",")
}
