package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tutorhub/internal/database"
	"tutorhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Order{}, &domain.OrderFile{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id int64, role domain.Role) {
	t.Helper()
	require.NoError(t, db.Create(&domain.User{
		ID:           id,
		Name:         "User",
		Email:        fmt.Sprintf("user%d@example.com", id),
		PasswordHash: "x",
		Role:         role,
	}).Error)
}

func seedUserAt(t *testing.T, db *gorm.DB, id int64, role domain.Role, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&domain.User{
		ID:           id,
		Name:         "User",
		Email:        fmt.Sprintf("user%d@example.com", id),
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    createdAt,
	}).Error)
}

func seedCompleted(t *testing.T, db *gorm.DB, studentID, writerID int64, price int, completedAt time.Time) {
	t.Helper()
	created := completedAt.AddDate(0, 0, -2)
	require.NoError(t, db.Create(&domain.Order{
		UserID:      studentID,
		Title:       "done",
		Price:       price,
		Status:      domain.OrderCompleted,
		WriterID:    &writerID,
		CompletedAt: &completedAt,
		CompletedBy: &writerID,
		CreatedAt:   created,
	}).Error)
}

func TestDashboardGrowthZeroWhenNoPriorRevenue(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleWriter)
	// Revenue only inside the trailing 30 days; the prior window is empty.
	seedCompleted(t, db, 1, 2, 100, testNow.AddDate(0, 0, -5))

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), stats.TotalRevenue)
	assert.Equal(t, int64(100), stats.MonthlyRevenue)
	assert.Equal(t, float64(0), stats.RevenueGrowth)
}

func TestDashboardGrowthAgainstPriorWindow(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleWriter)
	seedCompleted(t, db, 1, 2, 150, testNow.AddDate(0, 0, -5))  // current window
	seedCompleted(t, db, 1, 2, 100, testNow.AddDate(0, 0, -45)) // prior window

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(150), stats.MonthlyRevenue)
	assert.Equal(t, float64(50), stats.RevenueGrowth)
}

func TestDashboardCompletionRateRounds(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleWriter)
	seedCompleted(t, db, 1, 2, 10, testNow.AddDate(0, 0, -1))
	seedCompleted(t, db, 1, 2, 10, testNow.AddDate(0, 0, -2))
	seedCompleted(t, db, 1, 2, 10, testNow.AddDate(0, 0, -3))
	require.NoError(t, db.Create(&domain.Order{
		UserID: 1, Title: "open", Status: domain.OrderPending, CreatedAt: testNow,
	}).Error)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, 75, stats.CompletionRate)
}

func TestDashboardStatusDistributionBuckets(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	seedUser(t, db, 1, domain.RoleStudent)
	for _, st := range []domain.OrderStatus{
		domain.OrderPending, domain.OrderBidding,
		domain.OrderInProgress,
		domain.OrderCompleted,
		domain.OrderCancelled,
	} {
		require.NoError(t, db.Create(&domain.Order{UserID: 1, Status: st, CreatedAt: testNow}).Error)
	}

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	// Pending and Bidding share a bucket; Cancelled is not charted.
	assert.Equal(t, int64(2), stats.Statuses.Pending)
	assert.Equal(t, int64(1), stats.Statuses.InProgress)
	assert.Equal(t, int64(1), stats.Statuses.Completed)
}

func TestDashboardSeriesShape(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.RevenueSeries, 30)
	assert.Len(t, stats.SignupSeries, 7)
	assert.Len(t, stats.Retention, 6)
	assert.Equal(t, testNow.Format("2006-01-02"), stats.RevenueSeries[29].Label)
}

func TestDashboardWeeklyRetentionCohortRate(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	// Two students joined this week; only one of them placed an order.
	seedUserAt(t, db, 1, domain.RoleStudent, testNow.AddDate(0, 0, -1))
	seedUserAt(t, db, 2, domain.RoleStudent, testNow.AddDate(0, 0, -2))
	require.NoError(t, db.Create(&domain.Order{
		UserID: 1, Title: "first", Status: domain.OrderPending, CreatedAt: testNow.AddDate(0, 0, -1),
	}).Error)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.Retention, 6)
	assert.Equal(t, int64(50), stats.Retention[5].Value)
	// Earlier weeks have no signups at all, so their rate reads zero.
	for _, p := range stats.Retention[:5] {
		assert.Equal(t, int64(0), p.Value)
	}
}

func TestDashboardActiveStudentsCountedEver(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleStudent)
	// Well outside any 30-day window; the student still counts as active.
	require.NoError(t, db.Create(&domain.Order{
		UserID: 1, Title: "old", Status: domain.OrderCompleted, CreatedAt: testNow.AddDate(0, 0, -40),
	}).Error)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ActiveStudents)
	assert.Equal(t, int64(1), stats.InactiveStudents)
}

func TestDashboardVolumeMetrics(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleWriter)
	seedCompleted(t, db, 1, 2, 90, testNow.AddDate(0, 0, -1))
	require.NoError(t, db.Create(&domain.Order{
		UserID: 1, Title: "open", Price: 10, Status: domain.OrderPending, CreatedAt: testNow,
	}).Error)
	require.NoError(t, db.Create(&domain.Order{
		UserID: 1, Title: "bids", Price: 20, Status: domain.OrderBidding, CreatedAt: testNow,
	}).Error)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	// Only Pending itself, not Bidding.
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, float64(40), stats.AvgOrderValue)
	assert.Equal(t, int64(3), stats.MRR) // round(90 / 30)
}

func TestDashboardTurnaroundOverAssignedOrders(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleWriter)
	writerID := int64(2)

	require.NoError(t, db.Create(&domain.Order{
		UserID: 1, Title: "working", Status: domain.OrderInProgress, WriterID: &writerID,
		CreatedAt: testNow.AddDate(0, 0, -4), UpdatedAt: testNow.AddDate(0, 0, -1),
	}).Error)
	done := testNow.AddDate(0, 0, -1)
	require.NoError(t, db.Create(&domain.Order{
		UserID: 1, Title: "done", Status: domain.OrderCompleted, WriterID: &writerID,
		CompletedAt: &done, CompletedBy: &writerID,
		CreatedAt: testNow.AddDate(0, 0, -6), UpdatedAt: testNow.AddDate(0, 0, -1),
	}).Error)
	// Unclaimed orders stay out of the average no matter how old.
	require.NoError(t, db.Create(&domain.Order{
		UserID: 1, Title: "stale", Status: domain.OrderPending,
		CreatedAt: testNow.AddDate(0, 0, -60), UpdatedAt: testNow,
	}).Error)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.0, stats.AvgTurnaroundDays)
}

func TestUpdateRoleGuardsSelf(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	seedUser(t, db, 1, domain.RoleAdmin)

	err := svc.UpdateRole(context.Background(), 1, 1, "student")
	assert.ErrorIs(t, err, ErrSelfDemotion)

	var u domain.User
	require.NoError(t, db.First(&u, 1).Error)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestUpdateRole(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	seedUser(t, db, 1, domain.RoleAdmin)
	seedUser(t, db, 2, domain.RoleStudent)

	require.NoError(t, svc.UpdateRole(context.Background(), 1, 2, "writer"))

	var u domain.User
	require.NoError(t, db.First(&u, 2).Error)
	assert.Equal(t, domain.RoleWriter, u.Role)

	assert.ErrorIs(t, svc.UpdateRole(context.Background(), 1, 2, "superuser"), ErrInvalidRole)
	assert.ErrorIs(t, svc.UpdateRole(context.Background(), 1, 99, "writer"), ErrUserNotFound)
}

func TestAssignOrderRequiresWriterRole(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleWriter)
	require.NoError(t, db.Create(&domain.Order{ID: 5, UserID: 1, Status: domain.OrderPending}).Error)

	assert.ErrorIs(t, svc.AssignOrder(context.Background(), 5, 1), ErrNotAWriter)
	assert.ErrorIs(t, svc.AssignOrder(context.Background(), 99, 2), ErrOrderNotFound)

	require.NoError(t, svc.AssignOrder(context.Background(), 5, 2))
	var o domain.Order
	require.NoError(t, db.First(&o, 5).Error)
	require.NotNil(t, o.WriterID)
	assert.Equal(t, int64(2), *o.WriterID)
	assert.Equal(t, domain.OrderInProgress, o.Status)
}

func TestFinancialFeeSplit(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleWriter)
	seedCompleted(t, db, 1, 2, 60, testNow.AddDate(0, 0, -1))
	seedCompleted(t, db, 1, 2, 40, testNow.AddDate(0, 0, -2))

	page, err := svc.Financial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), page.TotalRevenue)
	assert.Equal(t, int64(20), page.PlatformFees)
	assert.Equal(t, int64(80), page.WriterPayouts)
	require.Len(t, page.Recent, 2)
	assert.Equal(t, 60, page.Recent[0].Price)
}

func TestOrderDetailIncludesWriterRoster(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleWriter)
	seedUser(t, db, 3, domain.RoleWriter)
	require.NoError(t, db.Create(&domain.Order{ID: 5, UserID: 1, Status: domain.OrderPending}).Error)

	page, err := svc.OrderDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Order.ID)
	assert.Len(t, page.Writers, 2)

	_, err = svc.OrderDetail(context.Background(), 99)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestActivityFormatsLogLines(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	seedUser(t, db, 1, domain.RoleStudent)
	require.NoError(t, db.Create(&domain.Order{
		ID: 5, UserID: 1, Subject: "Statistics", Status: domain.OrderPending, CreatedAt: testNow,
	}).Error)

	page, err := svc.Activity(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Order #5 (Statistics): Pending", page.Items[0].Line)
}

func TestAnalyticsTopWriters(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceWithClock(db, func() time.Time { return testNow })

	seedUser(t, db, 1, domain.RoleStudent)
	seedUser(t, db, 2, domain.RoleWriter)
	seedUser(t, db, 3, domain.RoleWriter)
	seedCompleted(t, db, 1, 2, 100, testNow.AddDate(0, 0, -1))
	seedCompleted(t, db, 1, 2, 50, testNow.AddDate(0, 0, -2))
	seedCompleted(t, db, 1, 3, 80, testNow.AddDate(0, 0, -3))

	page, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	require.Len(t, page.TopWriters, 2)
	assert.Equal(t, int64(2), page.TopWriters[0].WriterID)
	assert.Equal(t, int64(150), page.TopWriters[0].Earnings)
	assert.Equal(t, int64(2), page.TopWriters[0].Completed)
	assert.Len(t, page.MonthlyTrend, 12)
}
