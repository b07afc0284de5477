package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sirumah_backend/internals/databases/testdb"
	"sirumah_backend/internals/features/housing/dto"
	m "sirumah_backend/internals/features/housing/model"
	userModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/helpers/dbtime"
	"sirumah_backend/internals/policy"
)

var ctx = context.Background()

// fixedClock: 10 Mei 2024 pukul 10:00 WIB.
func fixedClock() *dbtime.FixedClock {
	return &dbtime.FixedClock{T: time.Date(2024, 5, 10, 3, 0, 0, 0, time.UTC)}
}

type fixture struct {
	t     *testing.T
	db    *gorm.DB
	svc   *Service
	clock *dbtime.FixedClock

	admin, manager, sales, resident, otherResident policy.Actor
}

func newFixture(t *testing.T) *fixture {
	db := testdb.Open(t)
	clock := fixedClock()
	f := &fixture{t: t, db: db, clock: clock, svc: New(db, clock, nil)}
	f.admin = f.user(policy.Administrator)
	f.manager = f.user(policy.HousingManager)
	f.sales = f.user(policy.SalesStaff)
	f.resident = f.user(policy.Resident)
	f.otherResident = f.user(policy.Resident)
	return f
}

func (f *fixture) user(role policy.Role) policy.Actor {
	u := userModel.UserModel{
		Name: role.String() + " " + uuid.NewString()[:4], Email: uuid.NewString() + "@sirumah.test",
		Password: "x", Role: role, IsActive: true,
	}
	require.NoError(f.t, f.db.Create(&u).Error)
	return u.Actor()
}

func (f *fixture) house(block string) m.House {
	h := m.House{
		BlockNumber: block, Address: "Jl. Melati " + block, HouseType: "Type 36",
		LandArea: decimal.NewFromInt(72), BuildingArea: decimal.NewFromInt(36),
		Bedrooms: 2, Bathrooms: 1,
	}
	require.NoError(f.t, f.db.Create(&h).Error)
	return h
}

func (f *fixture) residentOf(h m.House, a *policy.Actor, active bool) m.Resident {
	r := m.Resident{HouseID: h.ID, Name: "Warga " + h.BlockNumber, Phone: "0811", Relationship: m.RelationshipOwner, IsActive: active}
	if a != nil {
		id := a.ID
		r.UserID = &id
	}
	require.NoError(f.t, f.db.Create(&r).Error)
	return r
}

func (f *fixture) payment(h m.House, status string, amount int64) m.Payment {
	p := m.Payment{
		HouseID: h.ID, PaymentType: "IPL", Amount: decimal.NewFromInt(amount),
		DueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Status: status, CreatedBy: f.manager.ID,
	}
	require.NoError(f.t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) complaint(h m.House, reporter policy.Actor, status, priority string) m.Complaint {
	c := m.Complaint{
		HouseID: h.ID, ReportedBy: reporter.ID, Title: "Atap bocor", Description: "Bocor di dapur",
		Category: "maintenance", Priority: priority, Status: status,
	}
	require.NoError(f.t, f.db.Create(&c).Error)
	return c
}

// decodePatch: body JSON → patch + daftar field, seperti controller.
func decodePatch[T any](t *testing.T, body string) (T, []string) {
	var p T
	fields, err := dto.DecodePatch([]byte(body), &p)
	require.NoError(t, err)
	return p, fields
}

func decodeCreate[T any](t *testing.T, body string) (T, []string) {
	var in T
	fields, err := dto.DecodeCreate([]byte(body), &in)
	require.NoError(t, err)
	return in, fields
}

func count(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	var n int64
	require.NoError(t, db.Model(model).Where(where, args...).Count(&n).Error)
	return n
}
