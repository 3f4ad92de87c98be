package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
)

type DashboardStats struct {
	RecycleWeight    int
	GeneralWeight    int
	TotalPoints      int
	Rank             int // 0 when the user has no ranked records yet
	RecentActivities []repository.RecordWithType
	Badges           []repository.EarnedBadge
}

type PersonalStats struct {
	TotalRecords  int
	TotalWeight   int
	TotalPoints   int
	RecycleWeight int
	GeneralWeight int
	AveragePerDay float64
	Rank          int
	Percentile    int
}

type TopPerformer struct {
	UserID uint64
	Name   string
	Points int
	Weight int
}

type SchoolStats struct {
	TotalUsers    int64
	TotalRecords  int64
	TotalWeight   int64
	TotalPoints   int64
	TopPerformers []TopPerformer
}

type MonthBucket struct {
	Month         string
	RecycleWeight int
	GeneralWeight int
	Points        int
}

type DayBucket struct {
	Day    string
	Weight int
	Points int
}

type CategoryShare struct {
	Category   string
	Weight     int
	Percentage float64
}

type StatisticsReport struct {
	Personal          PersonalStats
	School            SchoolStats
	Monthly           []MonthBucket
	Weekly            []DayBucket
	CategoryBreakdown []CategoryShare
}

type AdminOverview struct {
	TotalUsers        int64
	TotalStudents     int64
	TotalTeachers     int64
	TotalWasteRecords int64
	TotalWeight       int64
	TotalPoints       int64
	TodayRecords      int64
	TodayWeight       int64
}

type AdminStatistics struct {
	TotalUsers         int64
	TotalStudents      int64
	TotalTeachers      int64
	TotalWasteRecords  int64
	TotalWasteWeight   int64
	TotalPointsAwarded int64
	ActiveUsers        int64
	NewUsersThisMonth  int64
	RecordsThisMonth   int64
}

type StatsService interface {
	Dashboard(ctx context.Context, userID uint64) (*DashboardStats, error)
	Statistics(ctx context.Context, userID uint64, period string) (*StatisticsReport, error)
	AdminOverview(ctx context.Context) (*AdminOverview, error)
	AdminStatistics(ctx context.Context) (*AdminStatistics, error)
	ExportCSV(ctx context.Context, start, end *time.Time) ([]byte, string, error)
}

type statsService struct {
	records repository.WasteRecordRepository
	users   repository.UserRepository
	badges  repository.BadgeRepository
	now     Clock
}

func NewStatsService(records repository.WasteRecordRepository, users repository.UserRepository, badges repository.BadgeRepository, now Clock) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{records: records, users: users, badges: badges, now: now}
}

func (s *statsService) Dashboard(ctx context.Context, userID uint64) (*DashboardStats, error) {
	usage, err := s.records.SumByTypeForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &DashboardStats{}
	for _, u := range usage {
		out.TotalPoints += u.Points
		if isRecycleName(u.TypeName) {
			out.RecycleWeight += u.WeightG
		} else {
			out.GeneralWeight += u.WeightG
		}
	}

	summaries, err := s.records.PointSummaries(ctx, nil)
	if err != nil {
		return nil, err
	}
	ranked := rankSummaries(summaries, userID)
	for _, e := range ranked {
		if e.IsCurrentUser {
			out.Rank = e.Rank
			break
		}
	}

	recent, err := s.records.ListRecentWithType(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	out.RecentActivities = recent

	earned, err := s.badges.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}
	out.Badges = earned
	return out, nil
}

func (s *statsService) Statistics(ctx context.Context, userID uint64, period string) (*StatisticsReport, error) {
	now := s.now()
	var since time.Time
	switch period {
	case "week":
		since = now.Add(-7 * 24 * time.Hour)
	case "year":
		since = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default: // month
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	personalRecords, err := s.records.ListForUserSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	report := &StatisticsReport{}
	p := &report.Personal
	p.TotalRecords = len(personalRecords)
	for _, r := range personalRecords {
		p.TotalWeight += r.WeightG
		p.TotalPoints += r.Points
		if isRecycleName(r.TypeName) {
			p.RecycleWeight += r.WeightG
		} else {
			p.GeneralWeight += r.WeightG
		}
	}
	days := math.Max(1, math.Ceil(now.Sub(since).Hours()/24))
	if p.TotalRecords > 0 {
		p.AveragePerDay = float64(p.TotalWeight) / days
	}

	summaries, err := s.records.PointSummaries(ctx, &since)
	if err != nil {
		return nil, err
	}
	ranked := rankSummaries(summaries, userID)
	p.Rank = 1
	for _, e := range ranked {
		if e.IsCurrentUser {
			p.Rank = e.Rank
			if len(ranked) > 0 {
				p.Percentile = int(math.Round(float64(e.Rank-1) / float64(len(ranked)) * 100))
			}
			break
		}
	}

	totals, err := s.records.Totals(ctx, &since)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	report.School = SchoolStats{
		TotalUsers:   totalUsers,
		TotalRecords: totals.Records,
		TotalWeight:  totals.WeightG,
		TotalPoints:  totals.Points,
	}
	for i, e := range ranked {
		if i >= 5 {
			break
		}
		report.School.TopPerformers = append(report.School.TopPerformers, TopPerformer{
			UserID: e.UserID, Name: e.Name, Points: e.TotalPoints, Weight: e.TotalWeight,
		})
	}

	report.Monthly, report.Weekly, err = s.series(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	report.CategoryBreakdown = []CategoryShare{
		{Category: "ขยะรีไซเคิล", Weight: p.RecycleWeight, Percentage: share(p.RecycleWeight, p.TotalWeight)},
		{Category: "ขยะทั่วไป", Weight: p.GeneralWeight, Percentage: share(p.GeneralWeight, p.TotalWeight)},
	}
	return report, nil
}

// series builds the 6-month and 7-day buckets from one record fetch.
func (s *statsService) series(ctx context.Context, userID uint64, now time.Time) ([]MonthBucket, []DayBucket, error) {
	seriesStart := time.Date(now.Year(), now.Month()-5, 1, 0, 0, 0, 0, now.Location())
	records, err := s.records.ListForUserSince(ctx, userID, seriesStart)
	if err != nil {
		return nil, nil, err
	}

	monthly := make([]MonthBucket, 0, 6)
	for i := 5; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0)
		b := MonthBucket{Month: thaiMonthLabel(start)}
		for _, r := range records {
			if r.RecordDt.Before(start) || !r.RecordDt.Before(end) {
				continue
			}
			if isRecycleName(r.TypeName) {
				b.RecycleWeight += r.WeightG
			} else {
				b.GeneralWeight += r.WeightG
			}
			b.Points += r.Points
		}
		monthly = append(monthly, b)
	}

	weekly := make([]DayBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.Add(24 * time.Hour)
		b := DayBucket{Day: thaiWeekdayShort[start.Weekday()]}
		for _, r := range records {
			if r.RecordDt.Before(start) || !r.RecordDt.Before(end) {
				continue
			}
			b.Weight += r.WeightG
			b.Points += r.Points
		}
		weekly = append(weekly, b)
	}
	return monthly, weekly, nil
}

func (s *statsService) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	out := &AdminOverview{}
	var err error
	if out.TotalUsers, err = s.users.Count(ctx, nil); err != nil {
		return nil, err
	}
	student, teacher := model.RoleStudent, model.RoleTeacher
	if out.TotalStudents, err = s.users.Count(ctx, &student); err != nil {
		return nil, err
	}
	if out.TotalTeachers, err = s.users.Count(ctx, &teacher); err != nil {
		return nil, err
	}

	totals, err := s.records.Totals(ctx, nil)
	if err != nil {
		return nil, err
	}
	out.TotalWasteRecords = totals.Records
	out.TotalWeight = totals.WeightG
	out.TotalPoints = totals.Points

	today := startOfDay(s.now())
	todayTotals, err := s.records.Totals(ctx, &today)
	if err != nil {
		return nil, err
	}
	out.TodayRecords = todayTotals.Records
	out.TodayWeight = todayTotals.WeightG
	return out, nil
}

func (s *statsService) AdminStatistics(ctx context.Context) (*AdminStatistics, error) {
	out := &AdminStatistics{}
	var err error
	if out.TotalUsers, err = s.users.Count(ctx, nil); err != nil {
		return nil, err
	}
	student, teacher := model.RoleStudent, model.RoleTeacher
	if out.TotalStudents, err = s.users.Count(ctx, &student); err != nil {
		return nil, err
	}
	if out.TotalTeachers, err = s.users.Count(ctx, &teacher); err != nil {
		return nil, err
	}

	totals, err := s.records.Totals(ctx, nil)
	if err != nil {
		return nil, err
	}
	out.TotalWasteRecords = totals.Records
	out.TotalWasteWeight = totals.WeightG
	out.TotalPointsAwarded = totals.Points

	if out.ActiveUsers, err = s.users.CountActive(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if out.NewUsersThisMonth, err = s.users.CountCreatedSince(ctx, monthStart); err != nil {
		return nil, err
	}
	monthTotals, err := s.records.Totals(ctx, &monthStart)
	if err != nil {
		return nil, err
	}
	out.RecordsThisMonth = monthTotals.Records
	return out, nil
}

// exportRowCap bounds the CSV export size.
const exportRowCap = 10000

func (s *statsService) ExportCSV(ctx context.Context, start, end *time.Time) ([]byte, string, error) {
	rows, err := s.records.ListForExport(ctx, start, end, exportRowCap)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("waste-records-%s.csv", s.now().Format("2006-01-02"))
	return BuildExportCSV(rows), filename, nil
}

// BuildExportCSV renders the legacy spreadsheet export: UTF-8 BOM, Thai
// header, bare comma joins, Buddhist-era dates. The byte layout is fixed;
// do not switch to encoding/csv, which would quote Thai fields.
func BuildExportCSV(rows []repository.ExportRow) []byte {
	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString("ลำดับ,วันที่,ชื่อ,ชั้น,ห้อง,ประเภทขยะ,น้ำหนัก(กรัม),คะแนน")
	for i, r := range rows {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d,%s,%s,%s,%s,%s,%d,%d",
			i+1,
			thaiDate(r.RecordDt),
			r.UserName,
			intOrDash(r.Grade),
			strOrDash(r.ClassSection),
			r.TypeName,
			r.WeightG,
			r.Points,
		))
	}
	return []byte(b.String())
}

func thaiDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()+543)
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func strOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func share(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func isRecycleName(name string) bool {
	return strings.Contains(name, "รีไซเคิล") || strings.Contains(name, "Recycle")
}

var thaiMonthShort = [...]string{"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.", "ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค."}

var thaiWeekdayShort = [...]string{"อา.", "จ.", "อ.", "พ.", "พฤ.", "ศ.", "ส."}

func thaiMonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", thaiMonthShort[int(t.Month())-1], t.Year()+543)
}
