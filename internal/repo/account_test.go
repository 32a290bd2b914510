package repo

import (
	"context"
	"testing"

	"github.com/Skotchmaster/atlas_derslik/internal/models"
	pkgdb "github.com/Skotchmaster/atlas_derslik/pkg/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	return &GormRepo{DB: db}
}

func newAccount(identifier, role string) *models.Account {
	return &models.Account{
		Identifier:   identifier,
		PasswordHash: "$2a$04$hash",
		Role:         role,
		Active:       true,
	}
}

func TestGormRepo_CreateAndFind(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	acc := newAccount("  Demo@Example.com ", models.RoleStudent)
	require.NoError(t, r.CreateAccount(ctx, acc, &models.RoleProfile{
		Student: &models.StudentProfile{GradeLevel: "9", School: "Atlas Lisesi"},
	}))
	require.NotEqual(t, uuid.Nil, acc.ID)
	assert.Equal(t, "demo@example.com", acc.Identifier)

	byIdent, err := r.FindActiveByIdentifier(ctx, "DEMO@example.COM")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byIdent.ID)
	assert.Equal(t, models.RoleStudent, byIdent.Role)

	byID, err := r.FindActiveByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", byID.Identifier)

	profile, err := r.FindRoleProfile(ctx, acc.ID, models.RoleStudent)
	require.NoError(t, err)
	require.NotNil(t, profile.Student)
	assert.Nil(t, profile.Teacher)
	assert.Equal(t, "9", profile.Student.GradeLevel)
	assert.Equal(t, acc.ID, profile.Student.AccountID)
}

func TestGormRepo_FindMissing(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.FindActiveByIdentifier(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.FindActiveByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_InactiveAccountIsHidden(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	acc := newAccount("x@y.com", models.RoleTeacher)
	require.NoError(t, r.CreateAccount(ctx, acc, nil))
	require.NoError(t, r.SetActive(ctx, acc.ID, false))

	_, err := r.FindActiveByIdentifier(ctx, "x@y.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.FindActiveByID(ctx, acc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := identifierExists(r.DB.WithContext(ctx), "x@y.com")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, r.SetActive(ctx, acc.ID, true))
	_, err = r.FindActiveByID(ctx, acc.ID)
	assert.NoError(t, err)
}

func TestGormRepo_SetActive_Unknown(t *testing.T) {
	r := newTestRepo(t)

	err := r.SetActive(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_CreateAccount_Duplicate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateAccount(ctx, newAccount("x@y.com", models.RoleStudent), nil))

	err := r.CreateAccount(ctx, newAccount("X@Y.com", models.RoleTeacher), nil)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGormRepo_CreateAccount_RollsBackOnProfileFailure(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	acc := newAccount("teacher@example.com", models.RoleTeacher)
	err := r.CreateAccount(ctx, acc, &models.RoleProfile{
		Teacher: &models.TeacherProfile{Qualification: "MSc", HourlyRate: -10},
	})
	require.Error(t, err)

	exists, err := identifierExists(r.DB.WithContext(ctx), "teacher@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormRepo_FindRoleProfile(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	teacher := newAccount("t@example.com", models.RoleTeacher)
	require.NoError(t, r.CreateAccount(ctx, teacher, &models.RoleProfile{
		Teacher: &models.TeacherProfile{Subjects: "math,physics", Qualification: "MSc", HourlyRate: 250},
	}))

	profile, err := r.FindRoleProfile(ctx, teacher.ID, models.RoleTeacher)
	require.NoError(t, err)
	require.NotNil(t, profile.Teacher)
	assert.Equal(t, "math,physics", profile.Teacher.Subjects)

	student := newAccount("s@example.com", models.RoleStudent)
	require.NoError(t, r.CreateAccount(ctx, student, nil))
	_, err = r.FindRoleProfile(ctx, student.ID, models.RoleStudent)
	assert.ErrorIs(t, err, ErrNotFound)

	admin := newAccount("a@example.com", models.RoleAdmin)
	require.NoError(t, r.CreateAccount(ctx, admin, nil))
	_, err = r.FindRoleProfile(ctx, admin.ID, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}
