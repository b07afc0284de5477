package query

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
	userModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/helpers/apperror"
	helper "sirumah_backend/internals/helpers"
	"sirumah_backend/internals/policy"
)

func strPtr(s string) *string { return &s }

func mkUser(t *testing.T, db *gorm.DB, role policy.Role) userModel.UserModel {
	u := userModel.UserModel{Name: role.String(), Email: uuid.NewString() + "@sirumah.test", Password: "x", Role: role, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func mkHouse(t *testing.T, db *gorm.DB, block, address string, owner *string) m.House {
	h := m.House{
		BlockNumber: block, Address: address, HouseType: "Type 36",
		LandArea: decimal.NewFromInt(72), BuildingArea: decimal.NewFromInt(36),
		Bedrooms: 2, Bathrooms: 1, OwnerName: owner,
	}
	require.NoError(t, db.Create(&h).Error)
	return h
}

func list[T any](t *testing.T, db *gorm.DB, tg Target, rs policy.RowScope, f Filters) ([]T, int64) {
	var rows []T
	total, err := List(context.Background(), db, tg, rs, f, helper.NewPaging(1, 100, tg.PerPage, 0), &rows, nil)
	require.NoError(t, err)
	return rows, total
}

func TestHouseSearchMatchesBlockAddressOwner(t *testing.T) {
	db := testdb.Open(t)
	mkHouse(t, db, "B12", "Jl. Melati 1", nil)
	mkHouse(t, db, "A1", "Jl. b12 Raya", nil)
	mkHouse(t, db, "C3", "Jl. Mawar", strPtr("Pak B12-an"))
	mkHouse(t, db, "D4", "Jl. Kenanga", strPtr("Bu Sari"))
	mkHouse(t, db, "B1", "Jl. Dahlia 2", nil)

	rs := policy.RowScope{Kind: policy.ScopeAll}
	rows, total := list[m.House](t, db, Houses, rs, Filters{Search: "B12"})
	assert.EqualValues(t, 3, total)
	blocks := []string{}
	for _, h := range rows {
		blocks = append(blocks, h.BlockNumber)
	}
	assert.ElementsMatch(t, []string{"B12", "A1", "C3"}, blocks)
}

func TestSearchEscapesWildcards(t *testing.T) {
	db := testdb.Open(t)
	mkHouse(t, db, "A_1", "Jl. 100% Jaya", nil)
	mkHouse(t, db, "AB1", "Jl. Biasa", nil)

	rs := policy.RowScope{Kind: policy.ScopeAll}
	_, total := list[m.House](t, db, Houses, rs, Filters{Search: "a_1"})
	assert.EqualValues(t, 1, total)
	_, total = list[m.House](t, db, Houses, rs, Filters{Search: "100%"})
	assert.EqualValues(t, 1, total)
}

func TestEmptyFiltersAreNoOp(t *testing.T) {
	db := testdb.Open(t)
	mkHouse(t, db, "A1", "x", nil)
	mkHouse(t, db, "A2", "y", nil)

	rs := policy.RowScope{Kind: policy.ScopeAll}
	_, total := list[m.House](t, db, Houses, rs, Filters{
		Equals: map[string]string{"status": "", "house_type": "  "},
		Search: "   ",
	})
	assert.EqualValues(t, 2, total)
}

func TestRowScopes(t *testing.T) {
	db := testdb.Open(t)
	res := mkUser(t, db, policy.Resident)
	other := mkUser(t, db, policy.Resident)
	staff := mkUser(t, db, policy.HousingManager)

	mine := mkHouse(t, db, "A1", "x", nil)
	movedOut := mkHouse(t, db, "A2", "y", nil)
	theirs := mkHouse(t, db, "A3", "z", nil)

	require.NoError(t, db.Create(&m.Resident{HouseID: mine.ID, UserID: &res.ID, Name: "R", Phone: "1", IsActive: true}).Error)
	inactive := m.Resident{HouseID: movedOut.ID, UserID: &res.ID, Name: "R", Phone: "1", IsActive: true}
	require.NoError(t, db.Create(&inactive).Error)
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)
	require.NoError(t, db.Create(&m.Resident{HouseID: theirs.ID, UserID: &other.ID, Name: "O", Phone: "2", IsActive: true}).Error)

	for _, h := range []m.House{mine, movedOut, theirs} {
		require.NoError(t, db.Create(&m.Payment{HouseID: h.ID, PaymentType: "iuran", Amount: decimal.NewFromInt(100), DueDate: time.Now(), CreatedBy: staff.ID}).Error)
		require.NoError(t, db.Create(&m.Complaint{HouseID: h.ID, ReportedBy: other.ID, Title: "t", Description: "d", Category: "other"}).Error)
	}
	require.NoError(t, db.Create(&m.Complaint{HouseID: mine.ID, ReportedBy: res.ID, Title: "mine", Description: "d", Category: "security"}).Error)

	actor := policy.Actor{ID: res.ID, Role: policy.Resident}

	houses, total := list[m.House](t, db, Houses, policy.ScopeFor(actor, policy.ResourceHouse), Filters{})
	require.EqualValues(t, 1, total)
	assert.Equal(t, mine.ID, houses[0].ID)

	payments, total := list[m.Payment](t, db, Payments, policy.ScopeFor(actor, policy.ResourcePayment), Filters{})
	require.EqualValues(t, 1, total)
	assert.Equal(t, mine.ID, payments[0].HouseID)

	residents, total := list[m.Resident](t, db, Residents, policy.ScopeFor(actor, policy.ResourceResident), Filters{})
	assert.EqualValues(t, 2, total)
	for _, r := range residents {
		assert.Equal(t, res.ID, *r.UserID)
	}

	complaints, total := list[m.Complaint](t, db, Complaints, policy.ScopeFor(actor, policy.ResourceComplaint), Filters{})
	require.EqualValues(t, 1, total)
	assert.Equal(t, res.ID, complaints[0].ReportedBy)

	_, total = list[m.Complaint](t, db, Complaints, policy.ScopeFor(staff.Actor(), policy.ResourceComplaint), Filters{})
	assert.EqualValues(t, 4, total)

	sales := policy.Actor{ID: uuid.New(), Role: policy.SalesStaff}
	_, total = list[m.Payment](t, db, Payments, policy.ScopeFor(sales, policy.ResourcePayment), Filters{})
	assert.Zero(t, total)
}

func TestPaymentDateRangeInclusive(t *testing.T) {
	db := testdb.Open(t)
	staff := mkUser(t, db, policy.Administrator)
	h := mkHouse(t, db, "A1", "x", nil)
	for _, d := range []string{"2024-01-31", "2024-02-01", "2024-02-29", "2024-03-01"} {
		due, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		require.NoError(t, db.Create(&m.Payment{HouseID: h.ID, PaymentType: "iuran", Amount: decimal.NewFromInt(1), DueDate: due, CreatedBy: staff.ID}).Error)
	}

	rs := policy.RowScope{Kind: policy.ScopeAll}
	_, total := list[m.Payment](t, db, Payments, rs, Filters{DateFrom: "2024-02-01", DateTo: "2024-02-29"})
	assert.EqualValues(t, 2, total)
	_, total = list[m.Payment](t, db, Payments, rs, Filters{DateFrom: "2024-02-01"})
	assert.EqualValues(t, 3, total)
}

func TestInvalidFilterValues(t *testing.T) {
	db := testdb.Open(t)
	_, err := Apply(Base(context.Background(), db, Payments, policy.RowScope{Kind: policy.ScopeAll}), Payments, Filters{DateFrom: "kemarin"})
	assert.True(t, apperror.IsValidation(err))

	_, err = Apply(Base(context.Background(), db, Residents, policy.RowScope{Kind: policy.ScopeAll}), Residents, Filters{Bools: map[string]string{"is_active": "maybe"}})
	assert.True(t, apperror.IsValidation(err))
}

func TestResidentSearchThroughHouseBlock(t *testing.T) {
	db := testdb.Open(t)
	h1 := mkHouse(t, db, "C7", "x", nil)
	h2 := mkHouse(t, db, "D9", "y", nil)
	require.NoError(t, db.Create(&m.Resident{HouseID: h1.ID, Name: "Andi", Phone: "0811", IsActive: true}).Error)
	require.NoError(t, db.Create(&m.Resident{HouseID: h2.ID, Name: "Budi", Phone: "0812", IsActive: true}).Error)

	rows, total := list[m.Resident](t, db, Residents, policy.RowScope{Kind: policy.ScopeAll}, Filters{Search: "c7"})
	require.EqualValues(t, 1, total)
	assert.Equal(t, "Andi", rows[0].Name)

	_, total = list[m.Resident](t, db, Residents, policy.RowScope{Kind: policy.ScopeAll}, Filters{Bools: map[string]string{"is_active": "1"}})
	assert.EqualValues(t, 2, total)
}

func TestEcho(t *testing.T) {
	f := Filters{Equals: map[string]string{"status": "open", "category": ""}, Search: " x "}
	assert.Equal(t, map[string]string{"status": "open", "search": "x"}, f.Echo())
}
