package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sirumah_backend/internals/helpers/apperror"
)

func actor(r Role) Actor { return Actor{ID: uuid.New(), Role: r} }

func TestParseRole(t *testing.T) {
	for _, r := range AllRoles {
		got, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	got, err := ParseRole("  Housing_Manager ")
	require.NoError(t, err)
	assert.Equal(t, HousingManager, got)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRoleScan(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan([]byte("sales_staff")))
	assert.Equal(t, SalesStaff, r)
	assert.Error(t, r.Scan(42))

	v, err := Resident.Value()
	require.NoError(t, err)
	assert.Equal(t, "resident", v)
	_, err = RoleUnknown.Value()
	assert.Error(t, err)
}

func TestCapabilityTable(t *testing.T) {
	cases := []struct {
		role    Role
		res     Resource
		allowed []Action
		denied  []Action
	}{
		{Administrator, ResourcePayment, []Action{ActionList, ActionRead, ActionCreate, ActionUpdate, ActionDelete}, nil},
		{HousingManager, ResourceComplaint, []Action{ActionList, ActionCreate, ActionUpdate, ActionDelete}, nil},
		{SalesStaff, ResourceHouse, []Action{ActionList, ActionCreate, ActionUpdate, ActionDelete}, nil},
		{SalesStaff, ResourceResident, []Action{ActionList, ActionCreate, ActionUpdate, ActionDelete}, nil},
		{SalesStaff, ResourcePayment, nil, []Action{ActionList, ActionRead, ActionCreate, ActionUpdate, ActionDelete}},
		{SalesStaff, ResourceComplaint, []Action{ActionList, ActionRead, ActionCreate}, []Action{ActionUpdate, ActionDelete}},
		{Resident, ResourceHouse, []Action{ActionList, ActionRead}, []Action{ActionCreate, ActionUpdate, ActionDelete}},
		{Resident, ResourceResident, []Action{ActionList, ActionRead}, []Action{ActionCreate, ActionUpdate, ActionDelete}},
		{Resident, ResourcePayment, []Action{ActionList, ActionRead}, []Action{ActionCreate, ActionUpdate, ActionDelete}},
		{Resident, ResourceComplaint, []Action{ActionList, ActionRead, ActionCreate, ActionUpdate, ActionDelete}, nil},
		{HousingManager, ResourceUser, nil, []Action{ActionList, ActionDelete}},
	}
	for _, tc := range cases {
		a := actor(tc.role)
		for _, act := range tc.allowed {
			assert.Truef(t, Can(a, act, tc.res), "%s should %s %s", tc.role, act, tc.res)
		}
		for _, act := range tc.denied {
			assert.Falsef(t, Can(a, act, tc.res), "%s should not %s %s", tc.role, act, tc.res)
			assert.True(t, apperror.IsAuthorization(Authorize(a, act, tc.res)))
		}
	}
}

func TestCanRejectsAnonymousActor(t *testing.T) {
	assert.False(t, Can(Actor{Role: Administrator}, ActionList, ResourceHouse))
	assert.False(t, Can(Actor{ID: uuid.New()}, ActionList, ResourceHouse))
}

func TestScopeFor(t *testing.T) {
	res := actor(Resident)
	assert.Equal(t, ScopeReported, ScopeFor(res, ResourceComplaint).Kind)
	assert.Equal(t, ScopeOwnHouses, ScopeFor(res, ResourcePayment).Kind)
	assert.Equal(t, ScopeSelf, ScopeFor(res, ResourceResident).Kind)
	assert.Equal(t, res.ID, ScopeFor(res, ResourceComplaint).ActorID)

	assert.Equal(t, ScopeAll, ScopeFor(actor(SalesStaff), ResourceComplaint).Kind)
	assert.Equal(t, ScopeNone, ScopeFor(actor(SalesStaff), ResourcePayment).Kind)
	assert.Equal(t, ScopeAll, ScopeFor(actor(HousingManager), ResourcePayment).Kind)
}

func TestAuthorizeRecordResidentComplaint(t *testing.T) {
	res := actor(Resident)
	own := Record{OwnerID: res.ID, Status: "open"}

	assert.NoError(t, AuthorizeRecord(res, ActionUpdate, ResourceComplaint, own))
	assert.NoError(t, AuthorizeRecord(res, ActionDelete, ResourceComplaint, Record{OwnerID: res.ID, Status: "in_progress"}))

	for _, frozen := range []string{"resolved", "closed"} {
		err := AuthorizeRecord(res, ActionUpdate, ResourceComplaint, Record{OwnerID: res.ID, Status: frozen})
		assert.Truef(t, apperror.IsAuthorization(err), "status %s must be frozen", frozen)
	}

	other := Record{OwnerID: uuid.New(), Status: "open"}
	assert.True(t, apperror.IsAuthorization(AuthorizeRecord(res, ActionUpdate, ResourceComplaint, other)))
	assert.True(t, apperror.IsAuthorization(AuthorizeRecord(res, ActionDelete, ResourceComplaint, other)))

	// staff ignore ownership and status
	mgr := actor(HousingManager)
	assert.NoError(t, AuthorizeRecord(mgr, ActionUpdate, ResourceComplaint, Record{OwnerID: uuid.New(), Status: "closed"}))
}

func TestCheckFields(t *testing.T) {
	res := actor(Resident)
	assert.NoError(t, CheckFields(res, ResourceComplaint, []string{"title", "priority"}))

	err := CheckFields(res, ResourceComplaint, []string{"title", "status", "assigned_to"})
	var ae *apperror.AuthorizationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, []string{"assigned_to", "status"}, ae.Fields)

	mgr := actor(HousingManager)
	assert.NoError(t, CheckFields(mgr, ResourceComplaint, []string{"status", "assigned_to", "estimated_cost", "notes"}))
	assert.Error(t, CheckFields(mgr, ResourceComplaint, []string{"resolved_date"}))
	assert.Error(t, CheckFields(mgr, ResourcePayment, []string{"paid_date"}))
	assert.Error(t, CheckFields(mgr, ResourcePayment, []string{"paid_by"}))
}

func TestCheckCreateFields(t *testing.T) {
	res := actor(Resident)
	// reported_by is overwritten by the service, not rejected
	assert.NoError(t, CheckCreateFields(res, ResourceComplaint, []string{"house_id", "title", "reported_by"}))

	err := CheckCreateFields(res, ResourceComplaint, []string{"title", "status"})
	var ae *apperror.AuthorizationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "create", ae.Action)
	assert.Equal(t, []string{"status"}, ae.Fields)

	sales := actor(SalesStaff)
	assert.NoError(t, CheckCreateFields(sales, ResourceComplaint, []string{"house_id", "title", "category"}))
	assert.Error(t, CheckCreateFields(sales, ResourceComplaint, []string{"assigned_to"}))

	mgr := actor(HousingManager)
	assert.NoError(t, CheckCreateFields(mgr, ResourcePayment, []string{"amount", "status", "paid_by", "created_by"}))
	assert.True(t, CanSetField(mgr, ResourceComplaint, "estimated_cost"))
	assert.False(t, CanSetField(res, ResourceComplaint, "estimated_cost"))
}
