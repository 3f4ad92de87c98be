package main

import (
	"fmt"
	"log"

	"github.com/greenschool/zerowaste-backend/internal/config"
	"github.com/greenschool/zerowaste-backend/internal/db"
	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoPassword = "123456"

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	if err := conn.AutoMigrate(
		&model.User{},
		&model.WasteType{},
		&model.WasteRecord{},
		&model.Badge{},
		&model.UserBadge{},
		&model.Notification{},
		&model.Session{},
		&model.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := conn.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("users already exist; skipping seed")
		return nil
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		types, err := seedWasteTypes(tx)
		if err != nil {
			return err
		}
		if err := seedBadges(tx); err != nil {
			return err
		}
		users, err := seedUsers(tx)
		if err != nil {
			return err
		}
		if err := seedRecords(tx, users, types); err != nil {
			return err
		}
		log.Printf("seeded %d waste types, %d users", len(types), len(users))
		return nil
	})
}

func seedWasteTypes(tx *gorm.DB) ([]*model.WasteType, error) {
	types := []*model.WasteType{
		{Name: "ขวดพลาสติก", Description: strPtr("ขวดน้ำดื่ม ขวดเครื่องดื่มพลาสติกใส"), PointFactor: 0.05},
		{Name: "กระดาษ", Description: strPtr("กระดาษใช้แล้ว หนังสือพิมพ์ กล่องกระดาษ"), PointFactor: 0.03},
		{Name: "ขวดแก้ว", Description: strPtr("ขวดแก้วทุกชนิด"), PointFactor: 0.04},
		{Name: "กระป๋องอลูมิเนียม", Description: strPtr("กระป๋องเครื่องดื่มอลูมิเนียม"), PointFactor: 0.09},
	}
	for _, t := range types {
		if err := tx.Create(t).Error; err != nil {
			return nil, fmt.Errorf("seed waste type %q: %w", t.Name, err)
		}
	}
	return types, nil
}

func seedBadges(tx *gorm.DB) error {
	badges := []*model.Badge{
		{Name: "ก้าวแรก", Description: strPtr("ได้รับคะแนนแรก"), ThresholdPts: 1},
		{Name: "นักสะสมมือใหม่", Description: strPtr("สะสมครบ 100 คะแนน"), ThresholdPts: 100},
		{Name: "นักรักษ์โลก", Description: strPtr("สะสมครบ 500 คะแนน"), ThresholdPts: 500},
		{Name: "ฮีโร่สิ่งแวดล้อม", Description: strPtr("สะสมครบ 1,000 คะแนน"), ThresholdPts: 1000},
	}
	for _, b := range badges {
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("seed badge %q: %w", b.Name, err)
		}
	}
	return nil
}

func seedUsers(tx *gorm.DB) ([]*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	users := []*model.User{
		{Name: "ผู้ดูแลระบบ", Email: "admin@school.ac.th", PwdHash: string(hash), Role: model.RoleAdmin},
		{Name: "ครูสมศรี", Email: "teacher@school.ac.th", PwdHash: string(hash), Role: model.RoleTeacher},
		{Name: "เด็กชายสมชาย", Email: "student1@school.ac.th", PwdHash: string(hash), Role: model.RoleStudent, Grade: intPtr(5), ClassSection: strPtr("1")},
		{Name: "เด็กหญิงสมหญิง", Email: "student2@school.ac.th", PwdHash: string(hash), Role: model.RoleStudent, Grade: intPtr(5), ClassSection: strPtr("2")},
	}
	for _, u := range users {
		if err := tx.Create(u).Error; err != nil {
			return nil, fmt.Errorf("seed user %q: %w", u.Email, err)
		}
	}
	return users, nil
}

func seedRecords(tx *gorm.DB, users []*model.User, types []*model.WasteType) error {
	student1, student2 := users[2], users[3]
	plastic, paper := types[0], types[1]

	records := []*model.WasteRecord{
		{UserID: student1.ID, TypeID: plastic.ID, WeightG: 5000, Points: service.CalcPoints(5000, plastic.PointFactor)},
		{UserID: student1.ID, TypeID: paper.ID, WeightG: 3000, Points: service.CalcPoints(3000, paper.PointFactor)},
		{UserID: student2.ID, TypeID: plastic.ID, WeightG: 2000, Points: service.CalcPoints(2000, plastic.PointFactor)},
	}
	for _, r := range records {
		if err := tx.Create(r).Error; err != nil {
			return fmt.Errorf("seed record: %w", err)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
