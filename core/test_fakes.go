package core

import (
	"sync"
	"time"
)

// FakeStore is a test-only fake implementing StorageAdapter. It stores
// everything in maps and exposes error fields for behavior injection.
type FakeStore struct {
	mu            sync.RWMutex
	accounts      map[uint]*Account
	campaigns     map[uint]*Campaign
	contributions map[uint]*Contribution
	nextID        uint

	createAccountErr error
	getAccountErr    error
	contributionErr  error
	closed           bool
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		accounts:      make(map[uint]*Account),
		campaigns:     make(map[uint]*Campaign),
		contributions: make(map[uint]*Contribution),
		nextID:        1,
	}
}

func (f *FakeStore) allocID() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *FakeStore) CreateAccount(input RegisterInput) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createAccountErr != nil {
		return nil, f.createAccountErr
	}
	for _, a := range f.accounts {
		if a.Email == input.Email {
			return nil, ErrDuplicateEmail
		}
	}

	account := &Account{
		ID:        f.allocID(),
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		CreatedAt: time.Now(),
	}
	f.accounts[account.ID] = account
	return account, nil
}

func (f *FakeStore) GetAccountByID(id uint) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getAccountErr != nil {
		return nil, f.getAccountErr
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

func (f *FakeStore) GetAccountByEmail(email string) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getAccountErr != nil {
		return nil, f.getAccountErr
	}
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *FakeStore) ListAccountsByRole(role Role) ([]*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*Account
	for _, a := range f.accounts {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *FakeStore) CountAccounts() (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int64(len(f.accounts)), nil
}

func (f *FakeStore) UpdateAccount(a *Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[a.ID]; !ok {
		return ErrAccountNotFound
	}
	f.accounts[a.ID] = a
	return nil
}

func (f *FakeStore) DeleteAccount(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *FakeStore) CreateCampaign(input NewCampaign) (*Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.accounts[input.AssociationID]; !ok {
		return nil, ErrInvalidOwner
	}
	now := time.Now()
	start := input.StartDate
	if start.IsZero() {
		start = now
	}
	campaign := &Campaign{
		ID:            f.allocID(),
		Title:         input.Title,
		Description:   input.Description,
		TargetAmount:  input.TargetAmount,
		AssociationID: input.AssociationID,
		ImageURL:      input.ImageURL,
		StartDate:     start,
		EndDate:       input.EndDate,
		IsActive:      input.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.campaigns[campaign.ID] = campaign
	return campaign, nil
}

func (f *FakeStore) GetCampaignByID(id uint) (*Campaign, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.campaigns[id]
	if !ok {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

func (f *FakeStore) ListCampaignsByAssociation(associationID uint) ([]*Campaign, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*Campaign
	for _, c := range f.campaigns {
		if c.AssociationID == associationID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeStore) ListActiveCampaigns() ([]*Campaign, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*Campaign
	for _, c := range f.campaigns {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeStore) UpdateCampaign(c *Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.campaigns[c.ID]; !ok {
		return ErrCampaignNotFound
	}
	c.UpdatedAt = time.Now()
	f.campaigns[c.ID] = c
	return nil
}

func (f *FakeStore) CreateContribution(input NewContribution) (*Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.contributionErr != nil {
		return nil, f.contributionErr
	}
	campaign, ok := f.campaigns[input.CampaignID]
	if !ok {
		return nil, ErrCampaignNotFound
	}

	status := input.Status
	if status == "" {
		status = "completed"
	}
	contribution := &Contribution{
		ID:            f.allocID(),
		Amount:        input.Amount,
		Currency:      input.Currency,
		CampaignID:    input.CampaignID,
		DonorID:       input.DonorID,
		PaymentMethod: input.PaymentMethod,
		Status:        status,
		Message:       input.Message,
		IsAnonymous:   input.IsAnonymous,
		PaymentRef:    input.PaymentRef,
		CreatedAt:     time.Now(),
	}
	f.contributions[contribution.ID] = contribution

	campaign.CurrentAmount = campaign.CurrentAmount.Add(input.Amount)
	campaign.DonationCount++
	campaign.UpdatedAt = contribution.CreatedAt
	return contribution, nil
}

func (f *FakeStore) GetContributionByID(id uint) (*Contribution, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.contributions[id]
	if !ok {
		return nil, ErrContributionNotFound
	}
	return c, nil
}

func (f *FakeStore) ListContributionsByDonor(donorID uint) ([]*Contribution, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*Contribution
	for _, c := range f.contributions {
		if c.DonorID == donorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeStore) ListContributionsByCampaign(campaignID uint) ([]*Contribution, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*Contribution
	for _, c := range f.contributions {
		if c.CampaignID == campaignID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeStore) Initialize() error { return nil }

func (f *FakeStore) Reset(confirm string) error {
	if confirm == "" {
		return ErrResetNotConfirmed
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts = make(map[uint]*Account)
	f.campaigns = make(map[uint]*Campaign)
	f.contributions = make(map[uint]*Contribution)
	f.nextID = 1
	return nil
}

func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// FakeVault is a test-only fake implementing SessionVault. Save and
// clear failures can be injected through the error fields.
type FakeVault struct {
	mu       sync.Mutex
	token    string
	identity *Identity
	present  bool

	saveErr  error
	loadErr  error
	clearErr error

	saveCalls  int
	clearCalls int
}

func NewFakeVault() *FakeVault {
	return &FakeVault{}
}

func (f *FakeVault) SaveSession(token string, identity *Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	f.identity = identity
	f.present = true
	return nil
}

func (f *FakeVault) LoadSession() (string, *Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return "", nil, f.loadErr
	}
	if !f.present {
		return "", nil, ErrNoSession
	}
	return f.token, f.identity, nil
}

func (f *FakeVault) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.token = ""
	f.identity = nil
	f.present = false
	return nil
}

func (f *FakeVault) Close() error { return nil }
