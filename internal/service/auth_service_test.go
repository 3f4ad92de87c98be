package service

import (
	"context"
	"testing"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newSignUpUserRepo(existing map[string]*model.User) *stubUserRepo {
	return &stubUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if u, ok := existing[email]; ok {
				return u, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, u *model.User) error {
			u.ID = 1
			return nil
		},
	}
}

func TestSignUpValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      SignUpInput
		wantMsg string
	}{
		{
			name:    "missing fields",
			in:      SignUpInput{Email: "a@b.co", Password: "123456", Role: model.RoleStudent},
			wantMsg: "กรุณากรอกข้อมูลให้ครบถ้วน",
		},
		{
			name:    "bad email",
			in:      SignUpInput{Name: "x", Email: "not-an-email", Password: "123456", Role: model.RoleStudent},
			wantMsg: "รูปแบบอีเมลไม่ถูกต้อง",
		},
		{
			name:    "short password",
			in:      SignUpInput{Name: "x", Email: "a@b.co", Password: "12345", Role: model.RoleStudent},
			wantMsg: "รหัสผ่านต้องมีอย่างน้อย 6 ตัวอักษร",
		},
		{
			name:    "unknown role",
			in:      SignUpInput{Name: "x", Email: "a@b.co", Password: "123456", Role: "PRINCIPAL"},
			wantMsg: "กรุณาเลือกบทบาทให้ถูกต้อง",
		},
		{
			name:    "duplicate email",
			in:      SignUpInput{Name: "x", Email: "taken@b.co", Password: "123456", Role: model.RoleStudent},
			wantMsg: "อีเมลนี้ถูกใช้งานแล้ว",
		},
	}
	users := newSignUpUserRepo(map[string]*model.User{"taken@b.co": {ID: 9}})
	svc := NewAuthService(users, &stubSessionRepo{}, 30*24*time.Hour, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), tt.in)
			ve, ok := IsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestSignUpGradeOnlyForStudents(t *testing.T) {
	users := newSignUpUserRepo(nil)
	svc := NewAuthService(users, &stubSessionRepo{}, 30*24*time.Hour, nil)

	u, err := svc.SignUp(context.Background(), SignUpInput{
		Name: "ครูสมศรี", Email: "t@school.ac.th", Password: "123456",
		Role: model.RoleTeacher, Grade: intp(5),
	})
	require.NoError(t, err)
	assert.Nil(t, u.Grade, "grade is dropped for non-students")
	assert.NotEqual(t, "123456", u.PwdHash)
}

func TestSignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{ID: 7, Email: "s@school.ac.th", PwdHash: string(hash)}

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	var createdSession *model.Session
	sessions := &stubSessionRepo{CreateFn: func(ctx context.Context, s *model.Session) error {
		createdSession = s
		return nil
	}}
	users := &stubUserRepo{FindByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
		if email == stored.Email {
			return stored, nil
		}
		return nil, gorm.ErrRecordNotFound
	}}
	svc := NewAuthService(users, sessions, 30*24*time.Hour, fixedClock(now))

	t.Run("success issues a session", func(t *testing.T) {
		u, sess, err := svc.SignIn(context.Background(), "s@school.ac.th", "123456")
		require.NoError(t, err)
		assert.Equal(t, uint64(7), u.ID)
		require.NotNil(t, createdSession)
		assert.NotEmpty(t, sess.Token)
		assert.Equal(t, now.Add(30*24*time.Hour), sess.ExpiresAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.SignIn(context.Background(), "s@school.ac.th", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.SignIn(context.Background(), "nobody@school.ac.th", "123456")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthenticate(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	sessions := &stubSessionRepo{FindByTokenFn: func(ctx context.Context, token string, at time.Time) (*repository.SessionWithUser, error) {
		if token == "live" {
			return &repository.SessionWithUser{
				Session: model.Session{Token: "live", UserID: 7},
				User:    model.User{ID: 7, Role: model.RoleStudent},
			}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}}
	svc := NewAuthService(&stubUserRepo{}, sessions, 30*24*time.Hour, fixedClock(now))

	t.Run("live token", func(t *testing.T) {
		sw, err := svc.Authenticate(context.Background(), "live")
		require.NoError(t, err)
		assert.Equal(t, uint64(7), sw.User.ID)
	})

	t.Run("expired or unknown token", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "stale")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
