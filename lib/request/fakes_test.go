package requesthandler

import (
	"bytes"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"request-flow-backend/lib/notify"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
	dbmodels "request-flow-backend/models/db"
)

var errNotImplemented = errors.New("not implemented")

// memDB хранилище в памяти для сценариев обработчика заявок
type memDB struct {
	mu            sync.Mutex
	clock         time.Time
	users         map[string]dbmodels.User
	stages        map[string]dbmodels.Stage
	links         []dbmodels.StageInWorkflow
	fieldDefs     map[string]dbmodels.RequestField
	requestTypes  map[string]dbmodels.RequestType
	departments   map[string]dbmodels.Department
	deptApprovers []dbmodels.DepartmentStageApprover
	statuses      map[string]dbmodels.RequestStatus
	requests      map[string]dbmodels.Request
	members       []dbmodels.RequestMember
	snapshot      []dbmodels.RequestStageApprover
	fieldValues   []dbmodels.RequestFieldInRequest
	events        []dbmodels.RequestEvent
}

func newMemDB() *memDB {
	m := &memDB{
		clock:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		users:        map[string]dbmodels.User{},
		stages:       map[string]dbmodels.Stage{},
		fieldDefs:    map[string]dbmodels.RequestField{},
		requestTypes: map[string]dbmodels.RequestType{},
		departments:  map[string]dbmodels.Department{},
		statuses:     map[string]dbmodels.RequestStatus{},
		requests:     map[string]dbmodels.Request{},
	}
	for _, name := range models.CanonicalRequestStatuses {
		m.statuses["status-"+name] = dbmodels.RequestStatus{BaseModel: dbmodels.BaseModel{ID: "status-" + name}, Name: name}
	}
	return m
}

// now монотонное время, у каждой записи своя отметка
func (m *memDB) now() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memDB) base() dbmodels.BaseModel {
	at := m.now()
	return dbmodels.BaseModel{ID: uuid.NewString(), CreatedAt: at, UpdatedAt: at}
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	result := make(map[K]V, len(src))
	for k, v := range src {
		result[k] = v
	}
	return result
}

type memState struct {
	requests    map[string]dbmodels.Request
	members     []dbmodels.RequestMember
	snapshot    []dbmodels.RequestStageApprover
	fieldValues []dbmodels.RequestFieldInRequest
	events      []dbmodels.RequestEvent
}

// inTx при ошибке откатывает изменения заявок
func (m *memDB) inTx(fn func(s stores) error) error {
	m.mu.Lock()
	saved := memState{
		requests:    cloneMap(m.requests),
		members:     slices.Clone(m.members),
		snapshot:    slices.Clone(m.snapshot),
		fieldValues: slices.Clone(m.fieldValues),
		events:      slices.Clone(m.events),
	}
	m.mu.Unlock()
	err := fn(m.stores())
	if err != nil {
		m.mu.Lock()
		m.requests = saved.requests
		m.members = saved.members
		m.snapshot = saved.snapshot
		m.fieldValues = saved.fieldValues
		m.events = saved.events
		m.mu.Unlock()
	}
	return err
}

func (m *memDB) stores() stores {
	return stores{
		requests:      fakeRequests{m},
		approvers:     fakeApprovers{m},
		fields:        fakeFields{m},
		events:        fakeEvents{m},
		statuses:      fakeStatuses{m},
		requestTypes:  fakeRequestTypes{m},
		workflows:     fakeWorkflows{m},
		deptApprovers: fakeDeptApprovers{m},
		departments:   fakeDepartments{m},
		users:         fakeUsers{m},
	}
}

func (m *memDB) userPtr(id string) *dbmodels.User {
	user, ok := m.users[id]
	if !ok {
		return nil
	}
	return &user
}

func (m *memDB) stagePtr(id string) *dbmodels.Stage {
	stage, ok := m.stages[id]
	if !ok {
		return nil
	}
	return &stage
}

func (m *memDB) fieldPtr(id string) *dbmodels.RequestField {
	field, ok := m.fieldDefs[id]
	if !ok {
		return nil
	}
	return &field
}

func (m *memDB) requestTypeWithFields(id string) (dbmodels.RequestType, bool) {
	rec, ok := m.requestTypes[id]
	if !ok {
		return rec, false
	}
	fields := slices.Clone(rec.Fields)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Order < fields[j].Order })
	for idx := range fields {
		fields[idx].RequestField = m.fieldPtr(fields[idx].RequestFieldID)
	}
	rec.Fields = fields
	return rec, true
}

// loadRequest собирает заявку со связями, как это делает preload хранилища
func (m *memDB) loadRequest(id string) *dbmodels.Request {
	rec, ok := m.requests[id]
	if !ok {
		return nil
	}
	if department, ok := m.departments[rec.DepartmentID]; ok {
		rec.Department = &department
	}
	if requestType, ok := m.requestTypes[rec.RequestTypeID]; ok {
		requestType.Fields = nil
		rec.RequestType = &requestType
	}
	rec.Creator = m.userPtr(rec.CreatorID)
	rec.Stage = m.stagePtr(rec.StageID)
	if status, ok := m.statuses[rec.RequestStatusID]; ok {
		rec.Status = &status
	}
	rec.Members = []dbmodels.RequestMember{}
	for _, member := range m.members {
		if member.RequestID == id {
			member.User = m.userPtr(member.UserID)
			rec.Members = append(rec.Members, member)
		}
	}
	rec.StageApprovers = []dbmodels.RequestStageApprover{}
	for _, approver := range m.snapshot {
		if approver.RequestID == id {
			approver.User = m.userPtr(approver.UserID)
			approver.Stage = m.stagePtr(approver.StageID)
			rec.StageApprovers = append(rec.StageApprovers, approver)
		}
	}
	rec.Fields = m.requestFields(id)
	return &rec
}

func (m *memDB) requestFields(requestID string) []dbmodels.RequestFieldInRequest {
	result := []dbmodels.RequestFieldInRequest{}
	for _, value := range m.fieldValues {
		if value.RequestID == requestID {
			value.RequestField = m.fieldPtr(value.RequestFieldID)
			result = append(result, value)
		}
	}
	return result
}

func (m *memDB) eventsOf(requestID string) []dbmodels.RequestEvent {
	result := []dbmodels.RequestEvent{}
	for _, event := range m.events {
		if event.RequestID == requestID {
			result = append(result, event)
		}
	}
	return result
}

type fakeRequests struct{ m *memDB }

func (f fakeRequests) Create(rec dbmodels.Request) (string, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	rec.BaseModel = f.m.base()
	f.m.requests[rec.ID] = rec
	return rec.ID, nil
}

func (f fakeRequests) GetByID(id string) (*dbmodels.Request, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return f.m.loadRequest(id), nil
}

func (f fakeRequests) GetForUpdate(id string) (*dbmodels.Request, error) {
	return f.GetByID(id)
}

func (f fakeRequests) Update(id string, updMap map[string]interface{}) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	rec, ok := f.m.requests[id]
	if !ok {
		return errors.New("record not found")
	}
	for key, value := range updMap {
		switch key {
		case "stage_id":
			rec.StageID = value.(string)
		case "request_status_id":
			rec.RequestStatusID = value.(string)
		default:
			return errors.Errorf("unexpected column %v", key)
		}
	}
	rec.UpdatedAt = f.m.now()
	f.m.requests[id] = rec
	return nil
}

func (f fakeRequests) List(userID string, isAdmin bool, filter dbmodels.RequestFilter) ([]dbmodels.Request, int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	result := []dbmodels.Request{}
	for id := range f.m.requests {
		rec := f.m.loadRequest(id)
		if !isAdmin && rec.CreatorID != userID && !slices.ContainsFunc(rec.Members, func(member dbmodels.RequestMember) bool {
			return member.UserID == userID
		}) && !slices.ContainsFunc(rec.StageApprovers, func(approver dbmodels.RequestStageApprover) bool {
			return approver.UserID == userID
		}) {
			continue
		}
		if filter.StatusName != "" && rec.GetStatusName() != filter.StatusName {
			continue
		}
		if filter.DepartmentID != "" && rec.DepartmentID != filter.DepartmentID {
			continue
		}
		result = append(result, *rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, int64(len(result)), nil
}

func (f fakeRequests) AddMember(requestID, userID string, role models.MemberRole) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, member := range f.m.members {
		if member.RequestID == requestID && member.UserID == userID && member.Role == role {
			return nil
		}
	}
	f.m.members = append(f.m.members, dbmodels.RequestMember{RequestID: requestID, UserID: userID, Role: role})
	return nil
}

func (f fakeRequests) RemoveMember(requestID, userID string, role models.MemberRole) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.members = slices.DeleteFunc(f.m.members, func(member dbmodels.RequestMember) bool {
		return member.RequestID == requestID && member.UserID == userID && member.Role == role
	})
	return nil
}

func (f fakeRequests) SetMembers(requestID string, role models.MemberRole, userIDs []string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.members = slices.DeleteFunc(f.m.members, func(member dbmodels.RequestMember) bool {
		return member.RequestID == requestID && member.Role == role
	})
	for _, userID := range userIDs {
		f.m.members = append(f.m.members, dbmodels.RequestMember{RequestID: requestID, UserID: userID, Role: role})
	}
	return nil
}

func (f fakeRequests) CountByStatus() (map[string]int64, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	result := map[string]int64{}
	for _, rec := range f.m.requests {
		result[f.m.statuses[rec.RequestStatusID].Name]++
	}
	return result, nil
}

type fakeApprovers struct{ m *memDB }

func (f fakeApprovers) Create(rec dbmodels.RequestStageApprover) (string, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	rec.BaseModel = f.m.base()
	f.m.snapshot = append(f.m.snapshot, rec)
	return rec.ID, nil
}

func (f fakeApprovers) CreateMany(list []dbmodels.RequestStageApprover) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for idx := range list {
		list[idx].BaseModel = f.m.base()
		f.m.snapshot = append(f.m.snapshot, list[idx])
	}
	return nil
}

func (f fakeApprovers) GetByID(requestID, id string) (*dbmodels.RequestStageApprover, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, approver := range f.m.snapshot {
		if approver.RequestID == requestID && approver.ID == id {
			return &approver, nil
		}
	}
	return nil, nil
}

func (f fakeApprovers) Delete(requestID, id string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.snapshot = slices.DeleteFunc(f.m.snapshot, func(approver dbmodels.RequestStageApprover) bool {
		return approver.RequestID == requestID && approver.ID == id
	})
	return nil
}

func (f fakeApprovers) List(requestID string) ([]dbmodels.RequestStageApprover, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	result := []dbmodels.RequestStageApprover{}
	for _, approver := range f.m.snapshot {
		if approver.RequestID == requestID {
			result = append(result, approver)
		}
	}
	return result, nil
}

type fakeFields struct{ m *memDB }

func (f fakeFields) CreateMany(list []dbmodels.RequestFieldInRequest) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for idx := range list {
		list[idx].BaseModel = f.m.base()
		f.m.fieldValues = append(f.m.fieldValues, list[idx])
	}
	return nil
}

func (f fakeFields) UpdateValue(id, value string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for idx := range f.m.fieldValues {
		if f.m.fieldValues[idx].ID == id {
			f.m.fieldValues[idx].Value = value
			return nil
		}
	}
	return errors.New("record not found")
}

func (f fakeFields) List(requestID string) ([]dbmodels.RequestFieldInRequest, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return f.m.requestFields(requestID), nil
}

type fakeEvents struct{ m *memDB }

func (f fakeEvents) Create(rec dbmodels.RequestEvent) (string, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	rec.BaseModel = f.m.base()
	f.m.events = append(f.m.events, rec)
	return rec.ID, nil
}

func (f fakeEvents) List(requestID string) ([]dbmodels.RequestEvent, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return f.m.eventsOf(requestID), nil
}

type fakeStatuses struct{ m *memDB }

func (f fakeStatuses) Create(rec dbmodels.RequestStatus) (string, error) {
	return "", errNotImplemented
}

func (f fakeStatuses) GetByID(id string) (*dbmodels.RequestStatus, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	rec, ok := f.m.statuses[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeStatuses) GetByName(name string) (*dbmodels.RequestStatus, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, rec := range f.m.statuses {
		if rec.Name == name {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f fakeStatuses) Update(id string, updMap map[string]interface{}) error {
	return errNotImplemented
}

func (f fakeStatuses) List() ([]dbmodels.RequestStatus, error) {
	return nil, errNotImplemented
}

type fakeRequestTypes struct{ m *memDB }

func (f fakeRequestTypes) Create(rec dbmodels.RequestType) (string, error) {
	return "", errNotImplemented
}

func (f fakeRequestTypes) GetByID(id string) (*dbmodels.RequestType, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	rec, ok := f.m.requestTypeWithFields(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeRequestTypes) Update(id string, updMap map[string]interface{}) error {
	return errNotImplemented
}

func (f fakeRequestTypes) List() ([]dbmodels.RequestType, error) {
	return nil, errNotImplemented
}

type fakeWorkflows struct{ m *memDB }

func (f fakeWorkflows) Create(rec dbmodels.Workflow) (string, error) {
	return "", errNotImplemented
}

func (f fakeWorkflows) GetByID(id string) (*dbmodels.Workflow, error) {
	return nil, errNotImplemented
}

func (f fakeWorkflows) Update(id string, updMap map[string]interface{}) error {
	return errNotImplemented
}

func (f fakeWorkflows) List() ([]dbmodels.Workflow, error) {
	return nil, errNotImplemented
}

func (f fakeWorkflows) ListStages(workflowID string) ([]dbmodels.StageInWorkflow, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	result := []dbmodels.StageInWorkflow{}
	for _, link := range f.m.links {
		if link.WorkflowID == workflowID {
			link.Stage = f.m.stagePtr(link.StageID)
			result = append(result, link)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result, nil
}

func (f fakeWorkflows) ReplaceStages(workflowID string, links []dbmodels.StageInWorkflow) error {
	return errNotImplemented
}

type fakeDeptApprovers struct{ m *memDB }

func (f fakeDeptApprovers) Create(rec dbmodels.DepartmentStageApprover) (string, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	rec.BaseModel = f.m.base()
	f.m.deptApprovers = append(f.m.deptApprovers, rec)
	return rec.ID, nil
}

func (f fakeDeptApprovers) GetByID(id string) (*dbmodels.DepartmentStageApprover, error) {
	return nil, errNotImplemented
}

func (f fakeDeptApprovers) Find(departmentID, stageID, userID string) (*dbmodels.DepartmentStageApprover, error) {
	return nil, errNotImplemented
}

func (f fakeDeptApprovers) Delete(id string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.deptApprovers = slices.DeleteFunc(f.m.deptApprovers, func(rec dbmodels.DepartmentStageApprover) bool {
		return rec.ID == id
	})
	return nil
}

func (f fakeDeptApprovers) List() ([]dbmodels.DepartmentStageApprover, error) {
	return nil, errNotImplemented
}

func (f fakeDeptApprovers) ListByDepartment(departmentID string, stageIDs []string) ([]dbmodels.DepartmentStageApprover, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	result := []dbmodels.DepartmentStageApprover{}
	for _, rec := range f.m.deptApprovers {
		if rec.DepartmentID != departmentID {
			continue
		}
		if len(stageIDs) != 0 && !slices.Contains(stageIDs, rec.StageID) {
			continue
		}
		rec.User = f.m.userPtr(rec.UserID)
		result = append(result, rec)
	}
	return result, nil
}

type fakeDepartments struct{ m *memDB }

func (f fakeDepartments) Create(rec dbmodels.Department) (string, error) {
	return "", errNotImplemented
}

func (f fakeDepartments) GetByID(id string) (*dbmodels.Department, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	rec, ok := f.m.departments[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeDepartments) Update(id string, updMap map[string]interface{}) error {
	return errNotImplemented
}

func (f fakeDepartments) List() ([]dbmodels.Department, error) {
	return nil, errNotImplemented
}

func (f fakeDepartments) ListMembers(departmentID string) ([]dbmodels.DepartmentMember, error) {
	return nil, errNotImplemented
}

func (f fakeDepartments) ReplaceMembers(departmentID string, role models.MemberRole, userIDs []string) error {
	return errNotImplemented
}

type fakeUsers struct{ m *memDB }

func (f fakeUsers) Create(rec dbmodels.User) (string, error) {
	return "", errNotImplemented
}

func (f fakeUsers) GetByID(id string) (*dbmodels.User, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return f.m.userPtr(id), nil
}

func (f fakeUsers) GetByIDs(ids []string) ([]dbmodels.User, error) {
	return nil, errNotImplemented
}

func (f fakeUsers) GetByEmail(email string) (*dbmodels.User, error) {
	return nil, errNotImplemented
}

func (f fakeUsers) Update(id string, updMap map[string]interface{}) error {
	return errNotImplemented
}

func (f fakeUsers) Delete(id string) error {
	return errNotImplemented
}

func (f fakeUsers) List() ([]dbmodels.User, error) {
	return nil, errNotImplemented
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (f *fakeNotifier) Dispatch(n notify.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
}

func (f *fakeNotifier) kinds() []models.NotificationKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.NotificationKind{}
	for _, n := range f.sent {
		result = append(result, n.Kind)
	}
	return result
}

type fakeExporter struct{}

func (f fakeExporter) ExportRequestList(list []requestapimodels.RequestListItem) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	for _, item := range list {
		buf.WriteString(item.ID + "\n")
	}
	return buf, nil
}
