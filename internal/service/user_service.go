package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserInput struct {
	Name         string
	Email        string
	Role         model.Role
	Grade        *int
	ClassSection *string
	Password     string // optional on update
}

// Profile is the self-service view with aggregated progress.
type Profile struct {
	User         model.User
	TotalPoints  int
	TotalRecords int
	TotalWeight  int
	Badges       []repository.EarnedBadge
}

type UserService interface {
	ListWithStats(ctx context.Context) ([]repository.UserWithStats, error)
	Create(ctx context.Context, adminID uint64, in UserInput) (*model.User, error)
	Update(ctx context.Context, adminID, id uint64, in UserInput) (*model.User, error)
	Delete(ctx context.Context, adminID, id uint64) error
	Profile(ctx context.Context, userID uint64) (*Profile, error)
	UpdateName(ctx context.Context, userID uint64, name string) error
	ChangePassword(ctx context.Context, userID uint64, current, next string) error
}

type userService struct {
	users   repository.UserRepository
	records repository.WasteRecordRepository
	badges  repository.BadgeRepository
	audit   AuditService
}

func NewUserService(users repository.UserRepository, records repository.WasteRecordRepository, badges repository.BadgeRepository, audit AuditService) UserService {
	return &userService{users: users, records: records, badges: badges, audit: audit}
}

func (s *userService) ListWithStats(ctx context.Context) ([]repository.UserWithStats, error) {
	return s.users.ListWithStats(ctx)
}

func (s *userService) Create(ctx context.Context, adminID uint64, in UserInput) (*model.User, error) {
	if in.Name == "" || in.Email == "" || in.Role == "" || in.Password == "" {
		return nil, Invalid("กรุณากรอกข้อมูลให้ครบถ้วน")
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, Invalid("รูปแบบอีเมลไม่ถูกต้อง")
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
		Name:    in.Name,
		Email:   in.Email,
		PwdHash: string(hash),
		Role:    in.Role,
	}
	if in.Role == model.RoleStudent {
		u.Grade = in.Grade
		u.ClassSection = in.ClassSection
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, adminID, "user.create", fmt.Sprintf("id=%d email=%s role=%s", u.ID, u.Email, u.Role))
	return u, nil
}

func (s *userService) Update(ctx context.Context, adminID, id uint64, in UserInput) (*model.User, error) {
	if in.Name == "" || in.Email == "" || in.Role == "" {
		return nil, Invalid("กรุณากรอกข้อมูลให้ครบถ้วน")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Invalid("ไม่พบผู้ใช้นี้")
		}
		return nil, err
	}
	if in.Email != u.Email {
		if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
			return nil, Invalid("อีเมลนี้ถูกใช้งานแล้ว")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	u.Name = in.Name
	u.Email = in.Email
	u.Role = in.Role
	if in.Role == model.RoleStudent {
		u.Grade = in.Grade
		u.ClassSection = in.ClassSection
	} else {
		u.Grade = nil
		u.ClassSection = nil
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		u.PwdHash = string(hash)
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, adminID, "user.update", fmt.Sprintf("id=%d email=%s role=%s", u.ID, u.Email, u.Role))
	return u, nil
}

func (s *userService) Delete(ctx context.Context, adminID, id uint64) error {
	if adminID == id {
		return Invalid("ไม่สามารถลบบัญชีของตนเองได้")
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Invalid("ไม่พบผู้ใช้นี้")
		}
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, adminID, "user.delete", fmt.Sprintf("id=%d", id))
	return nil
}

func (s *userService) Profile(ctx context.Context, userID uint64) (*Profile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	summaries, err := s.records.PointSummaries(ctx, nil)
	if err != nil {
		return nil, err
	}
	p := &Profile{User: *u}
	for _, sum := range summaries {
		if sum.UserID == userID {
			p.TotalPoints = sum.TotalPoints
			p.TotalWeight = sum.TotalWeight
			p.TotalRecords = sum.RecordCount
			break
		}
	}
	earned, err := s.badges.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.Badges = earned
	return p, nil
}

func (s *userService) UpdateName(ctx context.Context, userID uint64, name string) error {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return Invalid("ชื่อต้องมีอย่างน้อย 2 ตัวอักษร")
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Invalid("ไม่พบผู้ใช้")
		}
		return err
	}
	u.Name = name
	return s.users.Update(ctx, u)
}

func (s *userService) ChangePassword(ctx context.Context, userID uint64, current, next string) error {
	if current == "" || next == "" {
		return Invalid("กรุณากรอกข้อมูลให้ครบถ้วน")
	}
	if len(next) < 6 {
		return Invalid("รหัสผ่านใหม่ต้องมีอย่างน้อย 6 ตัวอักษร")
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Invalid("ไม่พบผู้ใช้")
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PwdHash), []byte(current)) != nil {
		return Invalid("รหัสผ่านปัจจุบันไม่ถูกต้อง")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return err
	}
	u.PwdHash = string(hash)
	return s.users.Update(ctx, u)
}
