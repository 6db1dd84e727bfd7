package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hrflow/internal/domain/employee"
	"hrflow/internal/domain/request"
)

type memStaged struct {
	records map[string]*StagedEmployee
}

func newMemStaged() *memStaged {
	return &memStaged{records: map[string]*StagedEmployee{}}
}

func (m *memStaged) Create(ctx context.Context, staged *StagedEmployee) error {
	copied := *staged
	m.records[staged.EmployeeNumber] = &copied
	return nil
}

func (m *memStaged) Get(ctx context.Context, employeeNumber string) (*StagedEmployee, error) {
	staged, ok := m.records[employeeNumber]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *staged
	return &copied, nil
}

func (m *memStaged) List(ctx context.Context) ([]StagedEmployee, error) {
	var out []StagedEmployee
	for _, staged := range m.records {
		out = append(out, *staged)
	}
	return out, nil
}

func (m *memStaged) SetStatus(ctx context.Context, employeeNumber string, status Status) error {
	staged, ok := m.records[employeeNumber]
	if !ok {
		return ErrNotFound
	}
	staged.Status = status
	return nil
}

func (m *memStaged) Delete(ctx context.Context, employeeNumber string) error {
	if _, ok := m.records[employeeNumber]; !ok {
		return ErrNotFound
	}
	delete(m.records, employeeNumber)
	return nil
}

type memRoster struct {
	saved   map[string]*employee.Record
	saveErr map[string]error
}

func newMemRoster() *memRoster {
	return &memRoster{saved: map[string]*employee.Record{}, saveErr: map[string]error{}}
}

func (m *memRoster) Save(ctx context.Context, rec *employee.Record) error {
	if err := m.saveErr[rec.EmployeeNumber]; err != nil {
		return err
	}
	copied := *rec
	m.saved[rec.EmployeeNumber] = &copied
	return nil
}

func (m *memRoster) GetByNumber(ctx context.Context, employeeNumber string) (*employee.Record, error) {
	rec, ok := m.saved[employeeNumber]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return rec, nil
}

func (m *memRoster) UpdateAddress(ctx context.Context, employeeNumber string, update employee.AddressUpdate) error {
	return nil
}

func (m *memRoster) UpdateName(ctx context.Context, employeeNumber string, update employee.NameUpdate) error {
	return nil
}

func (m *memRoster) UpdateMyNumber(ctx context.Context, employeeNumber, myNumber string) error {
	return nil
}

func (m *memRoster) StampResignation(ctx context.Context, employeeNumber string, stamp employee.ResignationStamp) error {
	return nil
}

func (m *memRoster) ListDependents(ctx context.Context, employeeNumber string) ([]employee.Dependent, error) {
	return nil, nil
}

func (m *memRoster) AddDependent(ctx context.Context, employeeNumber string, dep employee.Dependent) (string, error) {
	return "", nil
}

func (m *memRoster) RemoveDependentByID(ctx context.Context, employeeNumber, dependentID string) error {
	return nil
}

func (m *memRoster) RemoveDependentByMatch(ctx context.Context, employeeNumber, name, relationship string) error {
	return nil
}

type memCredentials struct {
	hashes map[string]string
}

func (m *memCredentials) Provision(ctx context.Context, employeeNumber, email, passwordHash string) error {
	if m.hashes == nil {
		m.hashes = map[string]string{}
	}
	m.hashes[employeeNumber] = passwordHash
	return nil
}

type memFollowUps struct {
	created []request.CreateInput
}

func (m *memFollowUps) Create(ctx context.Context, in request.CreateInput) (int64, error) {
	m.created = append(m.created, in)
	return int64(len(m.created)), nil
}

type memMailer struct {
	sent    map[string]string
	sendErr error
}

func (m *memMailer) SendOnboardingEmail(ctx context.Context, address, name, initialPassword string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	if m.sent == nil {
		m.sent = map[string]string{}
	}
	m.sent[address] = initialPassword
	return nil
}

type memSheets struct {
	uploaded []string
}

func (m *memSheets) Upload(ctx context.Context, path string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty sheet")
	}
	m.uploaded = append(m.uploaded, path)
	return "https://files.local/" + path, nil
}

func stagedAged(number string, years int) *StagedEmployee {
	return &StagedEmployee{
		EmployeeNumber: number,
		LastName:       "Suzuki",
		FirstName:      "Ichiro",
		BirthDate:      time.Now().AddDate(-years, 0, -1),
		Email:          number + "@corp.example",
		Status:         StatusReady,
	}
}

func newTestService() (*Service, *memStaged, *memRoster, *memCredentials, *memFollowUps, *memMailer, *memSheets) {
	staged := newMemStaged()
	roster := newMemRoster()
	creds := &memCredentials{}
	followUps := &memFollowUps{}
	mailer := &memMailer{}
	sheets := &memSheets{}
	svc := NewService(staged, roster, creds, followUps, sheets, mailer)
	return svc, staged, roster, creds, followUps, mailer, sheets
}

func TestPromoteDerivesNursingInsurance(t *testing.T) {
	svc, staged, roster, _, _, _, _ := newTestService()
	ctx := context.Background()

	staged.records["3001"] = stagedAged("3001", 66)
	staged.records["3002"] = stagedAged("3002", 50)
	staged.records["3003"] = stagedAged("3003", 30)

	result, err := svc.Promote(ctx, []string{"3001", "3002", "3003"})
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if result.Promoted != 3 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	want := map[string]string{
		"3001": NursingFirstTier,
		"3002": NursingSecondTier,
		"3003": NursingNotInsured,
	}
	for number, category := range want {
		rec, ok := roster.saved[number]
		if !ok {
			t.Fatalf("employee %s not in roster", number)
		}
		if rec.NursingInsuranceType != category {
			t.Fatalf("%s: got %q want %q", number, rec.NursingInsuranceType, category)
		}
		if _, stillStaged := staged.records[number]; stillStaged {
			t.Fatalf("%s: staged record must be removed on success", number)
		}
	}
}

func TestPromoteIsolatesFailures(t *testing.T) {
	svc, staged, roster, _, _, _, _ := newTestService()
	ctx := context.Background()

	staged.records["3001"] = stagedAged("3001", 45)
	notReady := stagedAged("3002", 45)
	notReady.Status = StatusApplied
	staged.records["3002"] = notReady
	broken := stagedAged("3004", 45)
	staged.records["3004"] = broken
	roster.saveErr["3004"] = errors.New("db down")

	result, err := svc.Promote(ctx, []string{"3001", "3002", "3003", "3004"})
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if result.Promoted != 1 {
		t.Fatalf("expected 1 promoted, got %d", result.Promoted)
	}
	if result.Failed != 3 {
		t.Fatalf("expected 3 failures, got %d (%v)", result.Failed, result.Errors)
	}
	if _, ok := roster.saved["3001"]; !ok {
		t.Fatal("healthy employee must still be promoted")
	}
	if _, ok := staged.records["3004"]; !ok {
		t.Fatal("failed promotion must leave the staged record in place")
	}
}

func TestPromoteRaisesDependentFollowUp(t *testing.T) {
	svc, staged, _, _, followUps, _, _ := newTestService()
	ctx := context.Background()

	withDeps := stagedAged("3001", 35)
	withDeps.DependentStatus = "present"
	staged.records["3001"] = withDeps
	staged.records["3002"] = stagedAged("3002", 35)

	if _, err := svc.Promote(ctx, []string{"3001", "3002"}); err != nil {
		t.Fatalf("promote failed: %v", err)
	}

	if len(followUps.created) != 1 {
		t.Fatalf("expected one follow-up request, got %d", len(followUps.created))
	}
	req := followUps.created[0]
	if req.EmployeeNumber != "3001" || req.ApplicationType != "dependent-add" {
		t.Fatalf("unexpected follow-up request: %+v", req)
	}
}

func TestPromoteSendsUsableInitialPassword(t *testing.T) {
	svc, staged, _, creds, _, mailer, _ := newTestService()
	ctx := context.Background()

	staged.records["3001"] = stagedAged("3001", 35)
	if _, err := svc.Promote(ctx, []string{"3001"}); err != nil {
		t.Fatalf("promote failed: %v", err)
	}

	password := mailer.sent["3001@corp.example"]
	if password == "" {
		t.Fatal("expected onboarding email with an initial password")
	}
	hash := creds.hashes["3001"]
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		t.Fatalf("mailed password must match the provisioned hash: %v", err)
	}
}

func TestPromoteMailFailureIsWarningOnly(t *testing.T) {
	svc, staged, roster, _, _, mailer, _ := newTestService()
	ctx := context.Background()

	mailer.sendErr = errors.New("smtp down")
	staged.records["3001"] = stagedAged("3001", 35)

	result, err := svc.Promote(ctx, []string{"3001"})
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if result.Promoted != 1 || result.Failed != 0 {
		t.Fatalf("mail failure must not fail the promotion: %+v", result)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a warning for the failed mail")
	}
	if _, ok := roster.saved["3001"]; !ok {
		t.Fatal("employee must still be promoted")
	}
}

func TestPromoteGeneratesSheetsInGroupsOfFour(t *testing.T) {
	svc, staged, _, _, _, _, sheets := newTestService()
	ctx := context.Background()

	numbers := make([]string, 0, 5)
	for _, n := range []string{"3001", "3002", "3003", "3004", "3005"} {
		staged.records[n] = stagedAged(n, 35)
		numbers = append(numbers, n)
	}

	if _, err := svc.Promote(ctx, numbers); err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if len(sheets.uploaded) != 2 {
		t.Fatalf("five employees must yield two sheets, got %d", len(sheets.uploaded))
	}
}
