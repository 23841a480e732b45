package service

import (
	"context"
	"time"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// Hand-rolled stubs for the repository and collaborator ports. Unset
// functions return zero values so each test only wires what it asserts on.

type stubRoleRepo struct {
	findRoleFn   func(ctx context.Context, principalID string) (*domain.RoleRecord, error)
	upsertRoleFn func(ctx context.Context, principalID, role string) error
}

func (s *stubRoleRepo) FindRole(ctx context.Context, principalID string) (*domain.RoleRecord, error) {
	if s.findRoleFn == nil {
		return nil, nil
	}
	return s.findRoleFn(ctx, principalID)
}

func (s *stubRoleRepo) UpsertRole(ctx context.Context, principalID, role string) error {
	if s.upsertRoleFn == nil {
		return nil
	}
	return s.upsertRoleFn(ctx, principalID, role)
}

type stubEmployerRepo struct {
	findByIDFn func(ctx context.Context, id string) (*domain.EmployerProfile, error)
	createFn   func(ctx context.Context, p *domain.EmployerProfile) error
}

func (s *stubEmployerRepo) FindByID(ctx context.Context, id string) (*domain.EmployerProfile, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrProfileMissing
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubEmployerRepo) Create(ctx context.Context, p *domain.EmployerProfile) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, p)
}

type stubFreelancerRepo struct {
	findByIDFn       func(ctx context.Context, id string) (*domain.FreelancerProfile, error)
	listByEmployerFn func(ctx context.Context, employerID string) ([]domain.FreelancerProfile, error)
	listAllFn        func(ctx context.Context) ([]domain.FreelancerProfile, error)
	createFn         func(ctx context.Context, p *domain.FreelancerProfile) error
	updateFn         func(ctx context.Context, id string, upd ports.FreelancerProfileUpdate) error
}

func (s *stubFreelancerRepo) FindByID(ctx context.Context, id string) (*domain.FreelancerProfile, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrProfileMissing
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubFreelancerRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.FreelancerProfile, error) {
	if s.listByEmployerFn == nil {
		return nil, nil
	}
	return s.listByEmployerFn(ctx, employerID)
}

func (s *stubFreelancerRepo) ListAll(ctx context.Context) ([]domain.FreelancerProfile, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s *stubFreelancerRepo) Create(ctx context.Context, p *domain.FreelancerProfile) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, p)
}

func (s *stubFreelancerRepo) Update(ctx context.Context, id string, upd ports.FreelancerProfileUpdate) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, id, upd)
}

type stubJobRepo struct {
	createFn   func(ctx context.Context, j *domain.JobPosting) error
	findByIDFn func(ctx context.Context, id string) (*domain.JobPosting, error)
	listAllFn  func(ctx context.Context) ([]domain.JobPosting, error)
}

func (s *stubJobRepo) Create(ctx context.Context, j *domain.JobPosting) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, j)
}

func (s *stubJobRepo) FindByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrJobNotFound
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubJobRepo) ListAll(ctx context.Context) ([]domain.JobPosting, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

type stubTransactionRepo struct {
	createFn           func(ctx context.Context, t *domain.Transaction) error
	findByHashFn       func(ctx context.Context, txHash string) (*domain.Transaction, error)
	listByContractorFn func(ctx context.Context, contractorID string) ([]domain.Transaction, error)
	listByCompanyFn    func(ctx context.Context, companyID string) ([]domain.Transaction, error)
}

func (s *stubTransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, t)
}

func (s *stubTransactionRepo) FindByHash(ctx context.Context, txHash string) (*domain.Transaction, error) {
	if s.findByHashFn == nil {
		return nil, nil
	}
	return s.findByHashFn(ctx, txHash)
}

func (s *stubTransactionRepo) ListByContractor(ctx context.Context, contractorID string) ([]domain.Transaction, error) {
	if s.listByContractorFn == nil {
		return nil, nil
	}
	return s.listByContractorFn(ctx, contractorID)
}

func (s *stubTransactionRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.Transaction, error) {
	if s.listByCompanyFn == nil {
		return nil, nil
	}
	return s.listByCompanyFn(ctx, companyID)
}

type stubInvitationRepo struct {
	createFn         func(ctx context.Context, inv *domain.Invitation) error
	listByEmployerFn func(ctx context.Context, employerID string) ([]domain.Invitation, error)
}

func (s *stubInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, inv)
}

func (s *stubInvitationRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.Invitation, error) {
	if s.listByEmployerFn == nil {
		return nil, nil
	}
	return s.listByEmployerFn(ctx, employerID)
}

type stubChainClient struct {
	submitTransferFn     func(ctx context.Context, req ports.TransferRequest) (string, error)
	waitForTransactionFn func(ctx context.Context, hash string) (*ports.TransferResult, error)
	accountBalancesFn    func(ctx context.Context, address string) ([]ports.CoinBalance, error)
	deriveKeylessFn      func(ctx context.Context, rawIDToken string, ekp *domain.EphemeralKeyPair) (*domain.KeylessAccount, error)
}

func (s *stubChainClient) SubmitTransfer(ctx context.Context, req ports.TransferRequest) (string, error) {
	return s.submitTransferFn(ctx, req)
}

func (s *stubChainClient) WaitForTransaction(ctx context.Context, hash string) (*ports.TransferResult, error) {
	return s.waitForTransactionFn(ctx, hash)
}

func (s *stubChainClient) AccountBalances(ctx context.Context, address string) ([]ports.CoinBalance, error) {
	return s.accountBalancesFn(ctx, address)
}

func (s *stubChainClient) DeriveKeylessAccount(ctx context.Context, rawIDToken string, ekp *domain.EphemeralKeyPair) (*domain.KeylessAccount, error) {
	return s.deriveKeylessFn(ctx, rawIDToken, ekp)
}

type stubKeylessService struct {
	restoreFn func(ctx context.Context, principalID string) (*domain.KeylessAccount, error)
}

func (s *stubKeylessService) LoginURL(ctx context.Context, principalID string) (string, error) {
	return "", nil
}

func (s *stubKeylessService) Exchange(ctx context.Context, principalID, rawIDToken string) (*domain.KeylessAccount, error) {
	return nil, nil
}

func (s *stubKeylessService) Restore(ctx context.Context, principalID string) (*domain.KeylessAccount, error) {
	return s.restoreFn(ctx, principalID)
}

// memStateStore is an in-memory ClientStateStore for keyless and
// notification tests.
type memStateStore struct {
	lastChecked map[string]time.Time
	pairs       map[string]*domain.EphemeralKeyPair
	accounts    map[string]*domain.KeylessAccount
}

func newMemStateStore() *memStateStore {
	return &memStateStore{
		lastChecked: map[string]time.Time{},
		pairs:       map[string]*domain.EphemeralKeyPair{},
		accounts:    map[string]*domain.KeylessAccount{},
	}
}

func (m *memStateStore) LastChecked(ctx context.Context, principalID string) (time.Time, error) {
	return m.lastChecked[principalID], nil
}

func (m *memStateStore) SetLastChecked(ctx context.Context, principalID string, ts time.Time) error {
	m.lastChecked[principalID] = ts
	return nil
}

func (m *memStateStore) EphemeralKeyPair(ctx context.Context, principalID string) (*domain.EphemeralKeyPair, error) {
	return m.pairs[principalID], nil
}

func (m *memStateStore) SaveEphemeralKeyPair(ctx context.Context, principalID string, ekp *domain.EphemeralKeyPair) error {
	m.pairs[principalID] = ekp
	return nil
}

func (m *memStateStore) KeylessAccount(ctx context.Context, principalID string) (*domain.KeylessAccount, error) {
	return m.accounts[principalID], nil
}

func (m *memStateStore) SaveKeylessAccount(ctx context.Context, principalID string, acct *domain.KeylessAccount) error {
	m.accounts[principalID] = acct
	return nil
}
