package endpoint

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/model"
	"github.com/pijatjogja/pijatjogja-api/util"
)

var indonesianMonths = []string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

type monthlyStat struct {
	Month         string `json:"month"`
	Registrations int    `json:"registrations"`
	Approved      int    `json:"approved"`
	Rejected      int    `json:"rejected"`
}

// calculateMonthlyStats buckets registrations into the last six calendar
// months (oldest first), counting totals and approved/rejected decisions.
func calculateMonthlyStats(registrations []model.Registration, now time.Time) []monthlyStat {
	stats := make([]monthlyStat, 0, 6)

	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		label := fmt.Sprintf("%s %d", indonesianMonths[monthStart.Month()-1], monthStart.Year())

		stat := monthlyStat{Month: label}
		for _, r := range registrations {
			if r.SubmittedAt.Year() != monthStart.Year() || r.SubmittedAt.Month() != monthStart.Month() {
				continue
			}
			stat.Registrations++
			switch r.Status {
			case model.RegistrationApproved:
				stat.Approved++
			case model.RegistrationRejected:
				stat.Rejected++
			}
		}
		stats = append(stats, stat)
	}

	return stats
}

type dashboardOverview struct {
	TotalRegistrations    int64 `json:"total_registrations"`
	PendingRegistrations  int64 `json:"pending_registrations"`
	ApprovedRegistrations int64 `json:"approved_registrations"`
	RejectedRegistrations int64 `json:"rejected_registrations"`
	TotalTherapists       int64 `json:"total_therapists"`
	ActiveTherapists      int64 `json:"active_therapists"`
	InactiveTherapists    int64 `json:"inactive_therapists"`
	SuspendedTherapists   int64 `json:"suspended_therapists"`
}

func fetchOverview(db *gorm.DB) (dashboardOverview, error) {
	var o dashboardOverview

	registrationCounts := []struct {
		status string
		dest   *int64
	}{
		{"", &o.TotalRegistrations},
		{model.RegistrationPending, &o.PendingRegistrations},
		{model.RegistrationApproved, &o.ApprovedRegistrations},
		{model.RegistrationRejected, &o.RejectedRegistrations},
	}
	for _, rc := range registrationCounts {
		q := db.Model(&model.Registration{})
		if rc.status != "" {
			q = q.Where("status = ?", rc.status)
		}
		if err := q.Count(rc.dest).Error; err != nil {
			return o, err
		}
	}

	therapistCounts := []struct {
		status string
		dest   *int64
	}{
		{"", &o.TotalTherapists},
		{model.TherapistActive, &o.ActiveTherapists},
		{model.TherapistInactive, &o.InactiveTherapists},
		{model.TherapistSuspended, &o.SuspendedTherapists},
	}
	for _, tc := range therapistCounts {
		q := db.Model(&model.Therapist{})
		if tc.status != "" {
			q = q.Where("status = ?", tc.status)
		}
		if err := q.Count(tc.dest).Error; err != nil {
			return o, err
		}
	}

	return o, nil
}

// GetDashboard godoc
// @Summary      Admin dashboard statistics
// @Description  Overview counters, last-6-month registration aggregation, and recent activity
// @Tags         Dashboard
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=object} "Dashboard retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /dashboard [get]
func GetDashboard(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	overview, err := fetchOverview(db)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to compute dashboard overview",
			Err: err,
		})
		return
	}

	now := time.Now()
	sixMonthsStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

	var registrations []model.Registration
	if err := db.Where("submitted_at >= ?", sixMonthsStart).Find(&registrations).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve registrations",
			Err: err,
		})
		return
	}

	sevenDaysAgo := now.AddDate(0, 0, -7)

	var recentRegistrations []model.Registration
	if err := db.Where("submitted_at >= ?", sevenDaysAgo).
		Order("submitted_at DESC").Limit(5).Find(&recentRegistrations).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve recent registrations",
			Err: err,
		})
		return
	}

	var recentTherapists []model.Therapist
	if err := db.Where("joined_at >= ?", sevenDaysAgo).
		Order("joined_at DESC").Limit(5).Find(&recentTherapists).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve recent therapists",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Dashboard retrieved",
		Data: map[string]interface{}{
			"overview":             overview,
			"monthly_stats":        calculateMonthlyStats(registrations, now),
			"recent_registrations": recentRegistrations,
			"recent_therapists":    recentTherapists,
		},
	})
}
