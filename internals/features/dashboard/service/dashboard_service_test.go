package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sirumah_backend/internals/databases/testdb"
	m "sirumah_backend/internals/features/housing/model"
	housing "sirumah_backend/internals/features/housing/service"
	userModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/helpers/dbtime"
	"sirumah_backend/internals/policy"
)

func mkActor(t *testing.T, db *gorm.DB, role policy.Role) policy.Actor {
	u := userModel.UserModel{Name: role.String(), Email: uuid.NewString() + "@sirumah.test", Password: "x", Role: role, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u.Actor()
}

func day(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDashboardPerRole(t *testing.T) {
	db := testdb.Open(t)
	clock := &dbtime.FixedClock{T: time.Date(2024, 5, 20, 3, 0, 0, 0, time.UTC)}
	svc := New(housing.New(db, clock, nil))
	ctx := context.Background()

	mgr := mkActor(t, db, policy.HousingManager)
	sales := mkActor(t, db, policy.SalesStaff)
	res := mkActor(t, db, policy.Resident)

	a1 := m.House{BlockNumber: "A1", Address: "x", HouseType: "36", LandArea: decimal.NewFromInt(60), BuildingArea: decimal.NewFromInt(36), Bedrooms: 2, Bathrooms: 1}
	a2 := m.House{BlockNumber: "A2", Address: "y", HouseType: "36", LandArea: decimal.NewFromInt(60), BuildingArea: decimal.NewFromInt(36), Bedrooms: 2, Bathrooms: 1, Status: m.HouseSold}
	require.NoError(t, db.Create(&a1).Error)
	require.NoError(t, db.Create(&a2).Error)
	uid := res.ID
	require.NoError(t, db.Create(&m.Resident{HouseID: a1.ID, UserID: &uid, Name: "Sari", Phone: "08", IsActive: true}).Error)

	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	pays := []m.Payment{
		{HouseID: a1.ID, PaymentType: "IPL", Amount: decimal.NewFromInt(100), DueDate: due, Status: m.PaymentPaid, PaidDate: day(2024, 5, 3), CreatedBy: mgr.ID},
		{HouseID: a1.ID, PaymentType: "IPL", Amount: decimal.NewFromInt(100), DueDate: due, Status: m.PaymentPaid, PaidDate: day(2024, 4, 28), CreatedBy: mgr.ID},
		{HouseID: a2.ID, PaymentType: "IPL", Amount: decimal.NewFromInt(100), DueDate: due, Status: m.PaymentOverdue, CreatedBy: mgr.ID},
		{HouseID: a2.ID, PaymentType: "IPL", Amount: decimal.NewFromInt(100), DueDate: due, Status: m.PaymentPaid, PaidDate: day(2024, 5, 31), CreatedBy: mgr.ID},
	}
	require.NoError(t, db.Create(&pays).Error)
	require.NoError(t, db.Create(&m.Complaint{HouseID: a1.ID, ReportedBy: res.ID, Title: "t", Description: "d", Category: "other", Priority: m.PriorityUrgent, Status: m.ComplaintResolved, ResolvedDate: day(2024, 5, 2)}).Error)
	require.NoError(t, db.Create(&m.Complaint{HouseID: a2.ID, ReportedBy: mgr.ID, Title: "t", Description: "d", Category: "other", Priority: m.PriorityLow}).Error)

	d, err := svc.Build(ctx, mgr)
	require.NoError(t, err)
	require.NotNil(t, d.Payments)
	assert.Equal(t, PaymentCounters{Total: 4, Pending: 0, Overdue: 1, PaidThisMonth: 2}, *d.Payments)
	require.NotNil(t, d.Complaints)
	assert.Equal(t, ComplaintCounters{Total: 2, Open: 1, HighPriority: 1, ResolvedThisMonth: 1}, *d.Complaints)
	assert.EqualValues(t, 1, d.Houses.Sold)
	assert.Len(t, d.Recent.Houses, 2)
	assert.Len(t, d.Recent.Payments, 4)
	assert.False(t, d.OwnScope["payments"])

	d, err = svc.Build(ctx, sales)
	require.NoError(t, err)
	assert.Nil(t, d.Payments)
	assert.Empty(t, d.Recent.Payments)
	require.NotNil(t, d.Complaints)

	d, err = svc.Build(ctx, res)
	require.NoError(t, err)
	assert.True(t, d.OwnScope["payments"])
	assert.True(t, d.OwnScope["complaints"])
	assert.Equal(t, PaymentCounters{Total: 2, PaidThisMonth: 1}, *d.Payments)
	assert.Equal(t, ComplaintCounters{Total: 1, HighPriority: 1, ResolvedThisMonth: 1}, *d.Complaints)
	assert.Empty(t, d.Recent.Houses, "residents do not manage houses")
	assert.Len(t, d.Recent.Complaints, 1)
}
