// Package policy decides what an actor may do and which rows it may see.
// Every decision is a lookup in the capability table below; call sites never
// compare role names themselves.
package policy

import (
	"sort"

	"github.com/google/uuid"

	"sirumah_backend/internals/helpers/apperror"
)

type Resource uint8

const (
	ResourceHouse Resource = iota + 1
	ResourceResident
	ResourcePayment
	ResourceComplaint
	ResourceUser
)

func (r Resource) String() string {
	switch r {
	case ResourceHouse:
		return "house"
	case ResourceResident:
		return "resident"
	case ResourcePayment:
		return "payment"
	case ResourceComplaint:
		return "complaint"
	case ResourceUser:
		return "user"
	}
	return "unknown"
}

type Action uint8

const (
	ActionList Action = 1 << iota
	ActionRead
	ActionCreate
	ActionUpdate
	ActionDelete
)

const (
	readOnly = ActionList | ActionRead
	fullCRUD = ActionList | ActionRead | ActionCreate | ActionUpdate | ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionRead:
		return "read"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Capability is one cell of the role x resource table.
type Capability struct {
	Actions Action
	Scope   ScopeKind
	// Fields a PATCH/PUT may carry. Anything else is rejected.
	Fields []string
	// OwnRecordsOnly restricts update/delete to records the actor owns
	// (Record.OwnerID) whose status is not in FrozenStatuses.
	OwnRecordsOnly bool
	FrozenStatuses []string
}

func (c Capability) allows(a Action) bool { return c.Actions&a != 0 }

var (
	houseFields = []string{
		"block_number", "address", "house_type", "land_area", "building_area", "status",
		"owner_name", "owner_phone", "handover_date", "selling_price", "bedrooms", "bathrooms", "notes",
	}
	residentFields = []string{
		"house_id", "user_id", "name", "email", "phone", "id_number", "relationship",
		"move_in_date", "move_out_date", "is_active", "notes",
	}
	paymentFields = []string{
		"house_id", "payment_type", "amount", "due_date", "status", "receipt_number", "description", "notes",
	}
	complaintReporterFields = []string{"house_id", "title", "description", "category", "priority"}
	complaintStaffFields    = append(append([]string{}, complaintReporterFields...),
		"status", "assigned_to", "response", "target_resolution_date", "estimated_cost", "notes")
)

var capabilities = map[Role]map[Resource]Capability{
	Administrator: {
		ResourceHouse:     {Actions: fullCRUD, Scope: ScopeAll, Fields: houseFields},
		ResourceResident:  {Actions: fullCRUD, Scope: ScopeAll, Fields: residentFields},
		ResourcePayment:   {Actions: fullCRUD, Scope: ScopeAll, Fields: paymentFields},
		ResourceComplaint: {Actions: fullCRUD, Scope: ScopeAll, Fields: complaintStaffFields},
		ResourceUser:      {Actions: ActionList | ActionRead | ActionDelete, Scope: ScopeAll},
	},
	HousingManager: {
		ResourceHouse:     {Actions: fullCRUD, Scope: ScopeAll, Fields: houseFields},
		ResourceResident:  {Actions: fullCRUD, Scope: ScopeAll, Fields: residentFields},
		ResourcePayment:   {Actions: fullCRUD, Scope: ScopeAll, Fields: paymentFields},
		ResourceComplaint: {Actions: fullCRUD, Scope: ScopeAll, Fields: complaintStaffFields},
	},
	SalesStaff: {
		ResourceHouse:    {Actions: fullCRUD, Scope: ScopeAll, Fields: houseFields},
		ResourceResident: {Actions: fullCRUD, Scope: ScopeAll, Fields: residentFields},
		// complaints: any authenticated actor may file one; no edits.
		ResourceComplaint: {Actions: readOnly | ActionCreate, Scope: ScopeAll, Fields: complaintReporterFields},
	},
	Resident: {
		ResourceHouse:    {Actions: readOnly, Scope: ScopeOwnHouses},
		ResourceResident: {Actions: readOnly, Scope: ScopeSelf},
		ResourcePayment:  {Actions: readOnly, Scope: ScopeOwnHouses},
		ResourceComplaint: {
			Actions:        fullCRUD,
			Scope:          ScopeReported,
			Fields:         complaintReporterFields,
			OwnRecordsOnly: true,
			FrozenStatuses: []string{"resolved", "closed"},
		},
	},
}

// Lookup returns the capability cell; the zero Capability grants nothing.
func Lookup(role Role, res Resource) Capability {
	return capabilities[role][res]
}

// Can answers the table-level question without looking at a record.
func Can(a Actor, action Action, res Resource) bool {
	if !a.Role.Valid() || a.ID == uuid.Nil {
		return false
	}
	return Lookup(a.Role, res).allows(action)
}

// Authorize is Can with an AuthorizationError on refusal.
func Authorize(a Actor, action Action, res Resource) error {
	if Can(a, action, res) {
		return nil
	}
	return &apperror.AuthorizationError{Action: action.String(), Resource: res.String()}
}

// Record is the slice of an existing row the record-level rules look at.
type Record struct {
	OwnerID uuid.UUID
	Status  string
}

// AuthorizeRecord checks an action on an existing record. Row visibility for
// reads is enforced by the scoped query, not here.
func AuthorizeRecord(a Actor, action Action, res Resource, rec Record) error {
	if err := Authorize(a, action, res); err != nil {
		return err
	}
	capb := Lookup(a.Role, res)
	if !capb.OwnRecordsOnly || (action != ActionUpdate && action != ActionDelete) {
		return nil
	}
	if rec.OwnerID != a.ID {
		return &apperror.AuthorizationError{Action: action.String(), Resource: res.String()}
	}
	for _, s := range capb.FrozenStatuses {
		if rec.Status == s {
			return &apperror.AuthorizationError{Action: action.String(), Resource: res.String()}
		}
	}
	return nil
}

// CheckFields rejects any submitted field outside the actor's allow-list.
func CheckFields(a Actor, res Resource, submitted []string) error {
	return checkFields(a, ActionUpdate, res, submitted)
}

// CheckCreateFields only looks at fields some role may write. Keys no role
// may write (reported_by, created_by, paid_date ...) are overwritten by the
// service, so they are not an error here.
func CheckCreateFields(a Actor, res Resource, submitted []string) error {
	writable := map[string]struct{}{}
	for _, r := range AllRoles {
		for _, f := range Lookup(r, res).Fields {
			writable[f] = struct{}{}
		}
	}
	relevant := make([]string, 0, len(submitted))
	for _, f := range submitted {
		if _, ok := writable[f]; ok {
			relevant = append(relevant, f)
		}
	}
	return checkFields(a, ActionCreate, res, relevant)
}

func checkFields(a Actor, action Action, res Resource, submitted []string) error {
	allowed := map[string]struct{}{}
	for _, f := range Lookup(a.Role, res).Fields {
		allowed[f] = struct{}{}
	}
	var denied []string
	for _, f := range submitted {
		if _, ok := allowed[f]; !ok {
			denied = append(denied, f)
		}
	}
	if len(denied) == 0 {
		return nil
	}
	sort.Strings(denied)
	return &apperror.AuthorizationError{Action: action.String(), Resource: res.String(), Fields: denied}
}

// CanSetField reports whether field is on the actor's allow-list.
func CanSetField(a Actor, res Resource, field string) bool {
	for _, f := range Lookup(a.Role, res).Fields {
		if f == field {
			return true
		}
	}
	return false
}

// MutableFields exposes the allow-list, e.g. for edit forms.
func MutableFields(role Role, res Resource) []string {
	return append([]string(nil), Lookup(role, res).Fields...)
}
