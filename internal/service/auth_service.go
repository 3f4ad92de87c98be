package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SignUpInput struct {
	Name         string
	Email        string
	Password     string
	Role         model.Role
	Grade        *int
	ClassSection *string
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (*model.User, *model.Session, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*repository.SessionWithUser, error)
}

type authService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	sessionTTL time.Duration
	now        Clock
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, sessionTTL time.Duration, now Clock) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{users: users, sessions: sessions, sessionTTL: sessionTTL, now: now}
}

func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*model.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, Invalid("กรุณากรอกข้อมูลให้ครบถ้วน")
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, Invalid("รูปแบบอีเมลไม่ถูกต้อง")
	}
	if len(in.Password) < 6 {
		return nil, Invalid("รหัสผ่านต้องมีอย่างน้อย 6 ตัวอักษร")
	}
	if !in.Role.Valid() {
		return nil, Invalid("กรุณาเลือกบทบาทให้ถูกต้อง")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, Invalid("อีเมลนี้ถูกใช้งานแล้ว")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:    strings.TrimSpace(in.Name),
		Email:   in.Email,
		PwdHash: string(hash),
		Role:    in.Role,
	}
	// Grade and class only apply to students.
	if in.Role == model.RoleStudent {
		u.Grade = in.Grade
		u.ClassSection = in.ClassSection
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PwdHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess := &model.Session{
		UserID:    u.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*repository.SessionWithUser, error) {
	if token == "" {
		return nil, ErrInvalidCredentials
	}
	sw, err := s.sessions.FindByToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return sw, nil
}
