package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"hrflow/internal/domain/employee"
)

type memStore struct {
	nextID      int64
	apps        map[int64]*Application
	attachments map[int64][]Attachment
	createErr   error
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, apps: make(map[int64]*Application), attachments: make(map[int64][]Attachment)}
}

func (m *memStore) Create(ctx context.Context, app *Application) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	id := m.nextID
	m.nextID++
	stored := *app
	stored.ID = id
	stored.CreatedAt = time.Now()
	m.apps[id] = &stored
	return id, nil
}

func (m *memStore) Get(ctx context.Context, id int64) (*Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *app
	copied.Attachments = m.attachments[id]
	return &copied, nil
}

func (m *memStore) List(ctx context.Context) ([]Application, error) {
	var out []Application
	for id := int64(1); id < m.nextID; id++ {
		if app, ok := m.apps[id]; ok {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (m *memStore) ListByEmployee(ctx context.Context, employeeNumber string) ([]Application, error) {
	var out []Application
	for id := int64(1); id < m.nextID; id++ {
		if app, ok := m.apps[id]; ok && app.EmployeeNumber == employeeNumber {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (m *memStore) Replace(ctx context.Context, id int64, payload json.RawMessage) error {
	app, ok := m.apps[id]
	if !ok {
		return ErrNotFound
	}
	app.Payload = payload
	app.Status = StatusPending
	app.StatusComment = ""
	return nil
}

func (m *memStore) SetStatus(ctx context.Context, id int64, status Status, comment string) error {
	app, ok := m.apps[id]
	if !ok {
		return ErrNotFound
	}
	app.Status = status
	app.StatusComment = comment
	return nil
}

func (m *memStore) AddAttachment(ctx context.Context, id int64, att Attachment) error {
	m.attachments[id] = append(m.attachments[id], att)
	return nil
}

func (m *memStore) ListAttachments(ctx context.Context, id int64) ([]Attachment, error) {
	return m.attachments[id], nil
}

type memEmployees struct {
	records map[string]*employee.Record
	failAll bool
}

func newMemEmployees() *memEmployees {
	return &memEmployees{records: map[string]*employee.Record{}}
}

func (m *memEmployees) get(number string) (*employee.Record, error) {
	if m.failAll {
		return nil, errors.New("store unavailable")
	}
	rec, ok := m.records[number]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return rec, nil
}

func (m *memEmployees) GetByNumber(ctx context.Context, employeeNumber string) (*employee.Record, error) {
	rec, err := m.get(employeeNumber)
	if err != nil {
		return nil, err
	}
	copied := *rec
	return &copied, nil
}

func (m *memEmployees) Save(ctx context.Context, rec *employee.Record) error {
	if m.failAll {
		return errors.New("store unavailable")
	}
	copied := *rec
	m.records[rec.EmployeeNumber] = &copied
	return nil
}

func (m *memEmployees) UpdateAddress(ctx context.Context, employeeNumber string, update employee.AddressUpdate) error {
	rec, err := m.get(employeeNumber)
	if err != nil {
		return err
	}
	rec.PostalCode = update.PostalCode
	rec.Address = update.Address
	rec.AddressKana = update.AddressKana
	rec.ResidentPostalCode = update.ResidentPostalCode
	rec.ResidentAddress = update.ResidentAddress
	return nil
}

func (m *memEmployees) UpdateName(ctx context.Context, employeeNumber string, update employee.NameUpdate) error {
	rec, err := m.get(employeeNumber)
	if err != nil {
		return err
	}
	rec.LastName = update.LastName
	rec.FirstName = update.FirstName
	rec.LastNameKana = update.LastNameKana
	rec.FirstNameKana = update.FirstNameKana
	return nil
}

func (m *memEmployees) UpdateMyNumber(ctx context.Context, employeeNumber, myNumber string) error {
	rec, err := m.get(employeeNumber)
	if err != nil {
		return err
	}
	rec.MyNumber = myNumber
	return nil
}

func (m *memEmployees) StampResignation(ctx context.Context, employeeNumber string, stamp employee.ResignationStamp) error {
	rec, err := m.get(employeeNumber)
	if err != nil {
		return err
	}
	rec.ResignationDate = stamp.ResignationDate
	rec.LastWorkDate = stamp.LastWorkDate
	rec.ResignationReason = stamp.Reason
	rec.PostResignationAddress = stamp.PostResignationAddress
	rec.PostResignationPhone = stamp.PostResignationPhone
	rec.PostResignationEmail = stamp.PostResignationEmail
	rec.PostResignationInsurance = stamp.PostResignationInsurance
	return nil
}

func (m *memEmployees) ListDependents(ctx context.Context, employeeNumber string) ([]employee.Dependent, error) {
	rec, err := m.get(employeeNumber)
	if err != nil {
		return nil, err
	}
	return rec.Dependents, nil
}

func (m *memEmployees) AddDependent(ctx context.Context, employeeNumber string, dep employee.Dependent) (string, error) {
	rec, err := m.get(employeeNumber)
	if err != nil {
		return "", err
	}
	dep.ID = fmt.Sprintf("dep-%d", len(rec.Dependents)+1)
	rec.Dependents = append(rec.Dependents, dep)
	return dep.ID, nil
}

func (m *memEmployees) RemoveDependentByID(ctx context.Context, employeeNumber, dependentID string) error {
	rec, err := m.get(employeeNumber)
	if err != nil {
		return err
	}
	for i, dep := range rec.Dependents {
		if dep.ID == dependentID {
			rec.Dependents = append(rec.Dependents[:i], rec.Dependents[i+1:]...)
			return nil
		}
	}
	return employee.ErrDependentNotFound
}

func (m *memEmployees) RemoveDependentByMatch(ctx context.Context, employeeNumber, name, relationship string) error {
	rec, err := m.get(employeeNumber)
	if err != nil {
		return err
	}
	matched := -1
	for i, dep := range rec.Dependents {
		if dep.Name == name && dep.Relationship == relationship {
			if matched >= 0 {
				return employee.ErrAmbiguousMatch
			}
			matched = i
		}
	}
	if matched < 0 {
		return employee.ErrDependentNotFound
	}
	rec.Dependents = append(rec.Dependents[:matched], rec.Dependents[matched+1:]...)
	return nil
}

type memUploader struct {
	uploaded []string
	failOn   string
}

func (m *memUploader) Upload(ctx context.Context, path string, data []byte) (string, error) {
	if m.failOn != "" && m.failOn == path {
		return "", errors.New("upload failed")
	}
	m.uploaded = append(m.uploaded, path)
	return "https://files.local/" + path, nil
}

type memSweeper struct {
	swept   []string
	failErr error
}

func (m *memSweeper) DeleteOutstanding(ctx context.Context, employeeNumber string, appType string) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.swept = append(m.swept, employeeNumber+":"+appType)
	return nil
}

type memTracker struct {
	staged  map[string]string
	failErr error
}

func newMemTracker() *memTracker {
	return &memTracker{staged: map[string]string{}}
}

func (m *memTracker) MarkApplied(ctx context.Context, employeeNumber string) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.staged[employeeNumber] = "applied"
	return nil
}

func (m *memTracker) MarkDecision(ctx context.Context, employeeNumber string, to Status) error {
	if m.failErr != nil {
		return m.failErr
	}
	switch to {
	case StatusApproved:
		m.staged[employeeNumber] = "ready"
	case StatusRejected:
		m.staged[employeeNumber] = "rejected"
	}
	return nil
}

func (m *memTracker) StagedStatus(ctx context.Context, employeeNumber string) (string, error) {
	return m.staged[employeeNumber], nil
}

// gatedStore blocks inside the chosen store call until release is closed, so
// tests can hold a submission open while firing a duplicate.
type gatedStore struct {
	*memStore
	gateCreate bool
	gateGet    bool
	entered    chan struct{}
	release    chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		memStore: newMemStore(),
		entered:  make(chan struct{}, 2),
		release:  make(chan struct{}),
	}
}

func (g *gatedStore) Create(ctx context.Context, app *Application) (int64, error) {
	if g.gateCreate {
		g.entered <- struct{}{}
		<-g.release
	}
	return g.memStore.Create(ctx, app)
}

func (g *gatedStore) Get(ctx context.Context, id int64) (*Application, error) {
	if g.gateGet {
		g.entered <- struct{}{}
		<-g.release
	}
	return g.memStore.Get(ctx, id)
}

func newTestService() (*Service, *memStore, *memEmployees, *memUploader, *memSweeper) {
	store := newMemStore()
	employees := newMemEmployees()
	files := &memUploader{}
	sweeper := &memSweeper{}
	return NewService(store, employees, files, sweeper), store, employees, files, sweeper
}

func validDependentAddForm() Fields {
	return Fields{
		"relationshipType":  "spouse-other",
		"relationship":      "other",
		"relationshipOther": "sibling-in-law",
		"occupation":        "other",
		"occupationOther":   "freelance",
		"lastName":          "Sato",
		"firstName":         "Hanako",
		"birthDate":         "1992-02-02",
		"livingTogether":    "together",
	}
}

func TestSubmitRejectResubmitKeepsIdentity(t *testing.T) {
	svc, store, _, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           validDependentAddForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	var stored DependentAddPayload
	if err := json.Unmarshal(store.apps[res.ID].Payload, &stored); err != nil {
		t.Fatalf("payload decode failed: %v", err)
	}
	if stored.Relationship != "sibling-in-law" {
		t.Fatalf("expected folded relationship, got %q", stored.Relationship)
	}
	if stored.Occupation != "freelance" {
		t.Fatalf("expected folded occupation, got %q", stored.Occupation)
	}

	if _, err := svc.Decide(ctx, res.ID, StatusRejected, "need ID"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if store.apps[res.ID].StatusComment != "need ID" {
		t.Fatalf("expected rejection comment stored, got %q", store.apps[res.ID].StatusComment)
	}

	form := validDependentAddForm()
	form["relationshipOther"] = "sibling-in-law (revised)"
	resub, err := svc.Resubmit(ctx, res.ID, form)
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if resub.ID != res.ID {
		t.Fatalf("resubmission changed identity: %d != %d", resub.ID, res.ID)
	}

	app := store.apps[res.ID]
	if app.Status != StatusPending {
		t.Fatalf("expected pending after resubmission, got %s", app.Status)
	}
	if app.StatusComment != "" {
		t.Fatalf("expected cleared comment, got %q", app.StatusComment)
	}
	if err := json.Unmarshal(app.Payload, &stored); err != nil {
		t.Fatalf("payload decode failed: %v", err)
	}
	if stored.Relationship != "sibling-in-law (revised)" {
		t.Fatalf("expected replaced payload, got %q", stored.Relationship)
	}
}

func TestSubmitValidationFailureBeforeIO(t *testing.T) {
	svc, store, _, files, _ := newTestService()

	_, err := svc.Submit(context.Background(), SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           Fields{"relationshipType": "other"},
		Uploads:        []Upload{{FileName: "doc.pdf", Data: []byte("x")}},
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(store.apps) != 0 {
		t.Fatal("no save may happen on validation failure")
	}
	if len(files.uploaded) != 0 {
		t.Fatal("no upload may happen on validation failure")
	}
}

func TestSubmitUploadsBeforeSaveAndSweepsAfter(t *testing.T) {
	svc, store, _, files, sweeper := newTestService()

	res, err := svc.Submit(context.Background(), SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           validDependentAddForm(),
		Uploads:        []Upload{{FileName: "income.pdf", Data: []byte("x")}},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if len(files.uploaded) != 1 {
		t.Fatalf("expected exactly one upload, got %v", files.uploaded)
	}
	atts := store.attachments[res.ID]
	if len(atts) != 1 || atts[0].URL == "" {
		t.Fatalf("expected attachment with final URL, got %v", atts)
	}
	if len(sweeper.swept) != 1 || sweeper.swept[0] != "1001:dependent-add" {
		t.Fatalf("expected request sweep after save, got %v", sweeper.swept)
	}
}

func TestSubmitUploadFailureAbortsSave(t *testing.T) {
	svc, store, _, files, sweeper := newTestService()
	files.failOn = "applications/1001/dependent-add/income.pdf"

	_, err := svc.Submit(context.Background(), SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           validDependentAddForm(),
		Uploads:        []Upload{{FileName: "income.pdf", Data: []byte("x")}},
	})
	if err == nil {
		t.Fatal("expected upload failure to abort submission")
	}
	if len(store.apps) != 0 {
		t.Fatal("failed upload must abort the save")
	}
	if len(sweeper.swept) != 0 {
		t.Fatal("failed save must not sweep the outstanding request")
	}
}

func TestApproveAddressChangeOverwritesAddressOnly(t *testing.T) {
	svc, _, employees, _, _ := newTestService()
	ctx := context.Background()
	employees.records["1001"] = &employee.Record{
		EmployeeNumber:    "1001",
		PostalCode:        "9999999",
		Address:           "Old Town",
		BankAccountNumber: "12345678",
	}

	res, err := svc.Submit(ctx, SubmitInput{
		Type:           TypeAddressChange,
		EmployeeNumber: "1001",
		Form: Fields{
			"moveDate":           "2026-04-01",
			"isOverseasResident": "false",
			"newPostalCode":      "1234567",
			"newAddress":         "X",
			"sameAsNewAddress":   "true",
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	decision, err := svc.Decide(ctx, res.ID, StatusApproved, "")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if decision.Warning != "" {
		t.Fatalf("unexpected warning: %s", decision.Warning)
	}

	rec := employees.records["1001"]
	if rec.PostalCode != "1234567" || rec.Address != "X" {
		t.Fatalf("address not propagated: %+v", rec)
	}
	if rec.ResidentAddress != "X" {
		t.Fatalf("resident address should mirror the new address, got %q", rec.ResidentAddress)
	}
	if rec.BankAccountNumber != "12345678" {
		t.Fatalf("unrelated field changed: %q", rec.BankAccountNumber)
	}
}

func TestSecondApprovalBlockedByMachine(t *testing.T) {
	svc, _, employees, _, _ := newTestService()
	ctx := context.Background()
	employees.records["1001"] = &employee.Record{EmployeeNumber: "1001"}

	res, err := svc.Submit(ctx, SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           validDependentAddForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Decide(ctx, res.ID, StatusApproved, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if len(employees.records["1001"].Dependents) != 1 {
		t.Fatalf("expected one dependent, got %d", len(employees.records["1001"].Dependents))
	}

	if _, err := svc.Decide(ctx, res.ID, StatusApproved, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(employees.records["1001"].Dependents) != 1 {
		t.Fatal("dispatcher ran twice; the machine must prevent the second approval")
	}
}

func TestPropagationFailureKeepsApproval(t *testing.T) {
	svc, store, employees, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           validDependentAddForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	employees.failAll = true
	decision, err := svc.Decide(ctx, res.ID, StatusApproved, "")
	if err != nil {
		t.Fatalf("decision failed: %v", err)
	}
	if decision.Warning == "" {
		t.Fatal("expected warning naming the failed side effect")
	}
	if store.apps[res.ID].Status != StatusApproved {
		t.Fatalf("approval must be retained, got %s", store.apps[res.ID].Status)
	}
}

func TestRejectWithoutCommentFails(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           validDependentAddForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Decide(ctx, res.ID, StatusRejected, ""); !errors.Is(err, ErrCommentRequired) {
		t.Fatalf("expected ErrCommentRequired, got %v", err)
	}
}

func TestWithdrawTerminal(t *testing.T) {
	svc, store, _, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           validDependentAddForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := svc.Withdraw(ctx, res.ID); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if store.apps[res.ID].Status != StatusWithdrawn {
		t.Fatalf("expected withdrawn, got %s", store.apps[res.ID].Status)
	}
	if _, err := svc.Resubmit(ctx, res.ID, validDependentAddForm()); !errors.Is(err, ErrNotRejected) {
		t.Fatalf("withdrawn must be terminal, got %v", err)
	}
}

func TestListOrdering(t *testing.T) {
	svc, store, _, _, _ := newTestService()
	ctx := context.Background()

	submit := func(appType Type, form Fields) int64 {
		res, err := svc.Submit(ctx, SubmitInput{Type: appType, EmployeeNumber: fmt.Sprintf("10%d", store.nextID), Form: form})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		return res.ID
	}

	nameForm := Fields{
		"changeDate":       "2026-01-01",
		"newLastName":      "Sato",
		"newFirstName":     "Taro",
		"newLastNameKana":  "sato",
		"newFirstNameKana": "taro",
	}
	first := submit(TypeNameChange, nameForm)
	second := submit(TypeNameChange, nameForm)
	third := submit(TypeNameChange, nameForm)
	fourth := submit(TypeNameChange, nameForm)

	if err := store.SetStatus(ctx, first, StatusApproved, ""); err != nil {
		t.Fatal(err)
	}
	if err := store.SetStatus(ctx, second, StatusWithdrawn, ""); err != nil {
		t.Fatal(err)
	}
	if err := store.SetStatus(ctx, third, StatusRejected, "fix"); err != nil {
		t.Fatal(err)
	}

	apps, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := []int64{apps[0].ID, apps[1].ID, apps[2].ID, apps[3].ID}
	want := []int64{third, fourth, first, second}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestEditViewReconstructsOtherChoice(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           validDependentAddForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	form, err := svc.EditView(ctx, res.ID)
	if err != nil {
		t.Fatalf("edit view failed: %v", err)
	}
	if form["relationship"] != "other" || form["relationshipOther"] != "sibling-in-law" {
		t.Fatalf("expected other choice reconstructed, got %q / %q", form["relationship"], form["relationshipOther"])
	}
}

func validOnboardingForm() Fields {
	return Fields{
		"lastName":  "Sato",
		"firstName": "Taro",
		"birthDate": "1998-04-01",
		"email":     "taro.sato@example.com",
	}
}

func TestOnboardingSubmissionMarksStagedApplied(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tracker := newMemTracker()
	tracker.staged["2001"] = "awaiting-application"
	svc.Onboarding = tracker

	res, err := svc.Submit(context.Background(), SubmitInput{
		Type:           TypeOnboarding,
		EmployeeNumber: "2001",
		Form:           validOnboardingForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if res.Warning != "" {
		t.Fatalf("unexpected warning: %s", res.Warning)
	}
	if tracker.staged["2001"] != "applied" {
		t.Fatalf("expected staged record applied, got %q", tracker.staged["2001"])
	}
}

func TestOnboardingDecisionDrivesStagedRecord(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tracker := newMemTracker()
	svc.Onboarding = tracker
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitInput{
		Type:           TypeOnboarding,
		EmployeeNumber: "2001",
		Form:           validOnboardingForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.Decide(ctx, res.ID, StatusRejected, "my number missing"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if tracker.staged["2001"] != "rejected" {
		t.Fatalf("expected staged record rejected, got %q", tracker.staged["2001"])
	}
	app, err := svc.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if app.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", app.Status)
	}

	if _, err := svc.Resubmit(ctx, res.ID, validOnboardingForm()); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if tracker.staged["2001"] != "applied" {
		t.Fatalf("expected staged record applied after resubmission, got %q", tracker.staged["2001"])
	}

	if _, err := svc.Decide(ctx, res.ID, StatusApproved, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if tracker.staged["2001"] != "ready" {
		t.Fatalf("expected staged record ready, got %q", tracker.staged["2001"])
	}
	app, err = svc.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if app.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", app.Status)
	}
}

func TestOnboardingStatusFollowsStagedRecord(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tracker := newMemTracker()
	svc.Onboarding = tracker
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitInput{
		Type:           TypeOnboarding,
		EmployeeNumber: "2001",
		Form:           validOnboardingForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// HR moving the staged record by hand shows through on the application.
	tracker.staged["2001"] = "ready"
	apps, err := svc.ListByEmployee(ctx, "2001")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(apps) != 1 || apps[0].Status != StatusApproved {
		t.Fatalf("expected approved from staged record, got %+v", apps)
	}

	// Promotion removes the staged record; the stored status stands again.
	delete(tracker.staged, "2001")
	app, err := svc.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if app.Status != StatusPending {
		t.Fatalf("expected stored status without a staged record, got %s", app.Status)
	}
}

func TestOnboardingTrackerFailureKeepsSubmission(t *testing.T) {
	svc, store, _, _, _ := newTestService()
	tracker := newMemTracker()
	tracker.failErr = errors.New("staged store unavailable")
	svc.Onboarding = tracker

	res, err := svc.Submit(context.Background(), SubmitInput{
		Type:           TypeOnboarding,
		EmployeeNumber: "2001",
		Form:           validOnboardingForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if res.Warning == "" {
		t.Fatal("expected warning naming the failed staged update")
	}
	if store.apps[res.ID].Status != StatusPending {
		t.Fatalf("submission must be retained, got %s", store.apps[res.ID].Status)
	}
}

func TestSweepFailureSurfacesWarning(t *testing.T) {
	svc, store, _, _, sweeper := newTestService()
	sweeper.failErr = errors.New("request store unavailable")

	res, err := svc.Submit(context.Background(), SubmitInput{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Form:           validDependentAddForm(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if res.Warning == "" {
		t.Fatal("expected warning naming the failed sweep")
	}
	if store.apps[res.ID].Status != StatusPending {
		t.Fatalf("submission must be retained, got %s", store.apps[res.ID].Status)
	}
}

func TestSubmitDuplicateWhileInFlight(t *testing.T) {
	store := newGatedStore()
	store.gateCreate = true
	svc := NewService(store, newMemEmployees(), &memUploader{}, &memSweeper{})
	ctx := context.Background()

	in := SubmitInput{Type: TypeDependentAdd, EmployeeNumber: "1001", Form: validDependentAddForm()}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, in)
		done <- err
	}()
	<-store.entered

	if _, err := svc.Submit(ctx, in); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight for the duplicate, got %v", err)
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	// Guard released; the same employee and type may submit again.
	if _, err := svc.Submit(ctx, in); err != nil {
		t.Fatalf("submission after release failed: %v", err)
	}
}

func TestResubmitDuplicateWhileInFlight(t *testing.T) {
	store := newGatedStore()
	svc := NewService(store, newMemEmployees(), &memUploader{}, &memSweeper{})
	ctx := context.Background()

	id, err := store.memStore.Create(ctx, &Application{
		Type:           TypeDependentAdd,
		EmployeeNumber: "1001",
		Status:         StatusRejected,
	})
	if err != nil {
		t.Fatal(err)
	}
	store.gateGet = true

	done := make(chan error, 1)
	go func() {
		_, err := svc.Resubmit(ctx, id, validDependentAddForm())
		done <- err
	}()
	<-store.entered

	if _, err := svc.Resubmit(ctx, id, validDependentAddForm()); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight for the duplicate, got %v", err)
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("first resubmission failed: %v", err)
	}
	if store.apps[id].Status != StatusPending {
		t.Fatalf("expected pending after resubmission, got %s", store.apps[id].Status)
	}
}
