package service

import (
	"context"
	"sort"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
)

type LeaderboardFilter string

const (
	FilterAll      LeaderboardFilter = "all"
	FilterStudents LeaderboardFilter = "students"
	FilterMyGrade  LeaderboardFilter = "myGrade"
)

// leaderboardCap limits the full-list view; the requester's own entry is
// appended past the cap when needed.
const leaderboardCap = 50

type LeaderboardEntry struct {
	UserID        uint64
	Name          string
	Role          model.Role
	Grade         *int
	ClassSection  *string
	TotalPoints   int
	TotalWeight   int
	RecordCount   int
	Rank          int
	IsCurrentUser bool
}

type LeaderboardResult struct {
	Users             []LeaderboardEntry
	CurrentUser       *LeaderboardEntry
	TotalParticipants int
}

type LeaderboardService interface {
	Leaderboard(ctx context.Context, userID uint64, grade *int, filter LeaderboardFilter) (*LeaderboardResult, error)
}

type leaderboardService struct {
	records repository.WasteRecordRepository
}

func NewLeaderboardService(records repository.WasteRecordRepository) LeaderboardService {
	return &leaderboardService{records: records}
}

func (s *leaderboardService) Leaderboard(ctx context.Context, userID uint64, grade *int, filter LeaderboardFilter) (*LeaderboardResult, error) {
	summaries, err := s.records.PointSummaries(ctx, nil)
	if err != nil {
		return nil, err
	}

	overall := rankSummaries(summaries, userID)

	subset := overall
	switch filter {
	case FilterStudents:
		subset = rerank(filterEntries(overall, func(e LeaderboardEntry) bool {
			return e.Role == model.RoleStudent
		}))
	case FilterMyGrade:
		subset = rerank(filterEntries(overall, func(e LeaderboardEntry) bool {
			return e.Role == model.RoleStudent && grade != nil && e.Grade != nil && *e.Grade == *grade
		}))
	}

	result := &LeaderboardResult{TotalParticipants: len(subset)}

	for i := range subset {
		if subset[i].IsCurrentUser {
			entry := subset[i]
			result.CurrentUser = &entry
			break
		}
	}
	// A requester outside the filtered subset keeps their unfiltered rank.
	if result.CurrentUser == nil {
		for i := range overall {
			if overall[i].IsCurrentUser {
				entry := overall[i]
				result.CurrentUser = &entry
				break
			}
		}
	}

	if len(subset) > leaderboardCap {
		capped := make([]LeaderboardEntry, leaderboardCap, leaderboardCap+1)
		copy(capped, subset[:leaderboardCap])
		if result.CurrentUser != nil && result.CurrentUser.Rank > leaderboardCap {
			capped = append(capped, *result.CurrentUser)
		}
		subset = capped
	}
	result.Users = subset
	return result, nil
}

// rankSummaries drops zero-point users, sorts by points descending with a
// stable sort (ties keep input order, no secondary key), and assigns
// rank = position + 1.
func rankSummaries(summaries []repository.UserPointSummary, currentUserID uint64) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(summaries))
	for _, s := range summaries {
		if s.TotalPoints <= 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:        s.UserID,
			Name:          s.Name,
			Role:          s.Role,
			Grade:         s.Grade,
			ClassSection:  s.ClassSection,
			TotalPoints:   s.TotalPoints,
			TotalWeight:   s.TotalWeight,
			RecordCount:   s.RecordCount,
			IsCurrentUser: s.UserID == currentUserID,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func filterEntries(entries []LeaderboardEntry, keep func(LeaderboardEntry) bool) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func rerank(entries []LeaderboardEntry) []LeaderboardEntry {
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
