package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hrunx/sprintly-mvp/internal/email"
	"github.com/hrunx/sprintly-mvp/internal/matching"
	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/repository"
)

// In-memory repository fakes for service tests. The match fake is
// mutex-guarded because generation runs workers concurrently.

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[uuid.UUID]models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[uuid.UUID]models.Company)}
}

func (r *fakeCompanyRepo) GetByID(id uuid.UUID) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	company, ok := r.companies[id]
	if !ok {
		return nil, fmt.Errorf("company not found")
	}
	return &company, nil
}

func (r *fakeCompanyRepo) GetAll(repository.EntityFilters) ([]models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Company, 0, len(r.companies))
	for _, company := range r.companies {
		out = append(out, company)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCompanyRepo) Create(company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Update(company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; !ok {
		return fmt.Errorf("company not found")
	}
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return fmt.Errorf("company not found")
	}
	delete(r.companies, id)
	return nil
}

type fakeInvestorRepo struct {
	mu        sync.Mutex
	investors map[uuid.UUID]models.Investor
}

func newFakeInvestorRepo() *fakeInvestorRepo {
	return &fakeInvestorRepo{investors: make(map[uuid.UUID]models.Investor)}
}

func (r *fakeInvestorRepo) GetByID(id uuid.UUID) (*models.Investor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	investor, ok := r.investors[id]
	if !ok {
		return nil, fmt.Errorf("investor not found")
	}
	return &investor, nil
}

func (r *fakeInvestorRepo) GetAll(repository.EntityFilters) ([]models.Investor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Investor, 0, len(r.investors))
	for _, investor := range r.investors {
		out = append(out, investor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeInvestorRepo) Create(investor *models.Investor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if investor.ID == uuid.Nil {
		investor.ID = uuid.New()
	}
	r.investors[investor.ID] = *investor
	return nil
}

func (r *fakeInvestorRepo) Update(investor *models.Investor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.investors[investor.ID]; !ok {
		return fmt.Errorf("investor not found")
	}
	r.investors[investor.ID] = *investor
	return nil
}

func (r *fakeInvestorRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.investors[id]; !ok {
		return fmt.Errorf("investor not found")
	}
	delete(r.investors, id)
	return nil
}

type pairKey struct {
	companyID  uuid.UUID
	investorID uuid.UUID
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[pairKey]models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[pairKey]models.Match)}
}

func (r *fakeMatchRepo) Replace(match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	if match.Status == "" {
		match.Status = string(models.MatchSuggested)
	}
	r.matches[pairKey{match.CompanyID, match.InvestorID}] = *match
	return nil
}

func (r *fakeMatchRepo) GetByPair(companyID, investorID uuid.UUID) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[pairKey{companyID, investorID}]
	if !ok {
		return nil, fmt.Errorf("match not found")
	}
	return &match, nil
}

func (r *fakeMatchRepo) ListByCompany(companyID uuid.UUID, limit int) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Match
	for key, match := range r.matches {
		if key.companyID == companyID {
			out = append(out, match)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMatchRepo) ListByInvestor(investorID uuid.UUID, limit int) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Match
	for key, match := range r.matches {
		if key.investorID == investorID {
			out = append(out, match)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMatchRepo) List(filters repository.MatchFilters) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Match
	for _, match := range r.matches {
		if filters.MinScore != nil && match.Score < *filters.MinScore {
			continue
		}
		if filters.Status != "" && match.Status != filters.Status {
			continue
		}
		out = append(out, match)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateStatus(id uuid.UUID, status, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, match := range r.matches {
		if match.ID == id {
			match.Status = status
			match.Notes = notes
			r.matches[key] = match
			return nil
		}
	}
	return fmt.Errorf("match not found")
}

func (r *fakeMatchRepo) DeleteByCompany(companyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.matches {
		if key.companyID == companyID {
			delete(r.matches, key)
		}
	}
	return nil
}

func (r *fakeMatchRepo) DeleteByInvestor(investorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.matches {
		if key.investorID == investorID {
			delete(r.matches, key)
		}
	}
	return nil
}

func (r *fakeMatchRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matches)
}

type fakeWeightsRepo struct {
	mu      sync.Mutex
	weights matching.Weights
}

func newFakeWeightsRepo() *fakeWeightsRepo {
	return &fakeWeightsRepo{weights: matching.DefaultWeights()}
}

func (r *fakeWeightsRepo) Get() (matching.Weights, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.weights, nil
}

func (r *fakeWeightsRepo) Save(weights matching.Weights) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weights = weights
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return &user, nil
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.Email] = *user
	return nil
}

type fakeTxManager struct {
	repos *repository.Repositories
}

func (tm *fakeTxManager) WithTransaction(fn func(repos *repository.Repositories) error) error {
	return fn(tm.repos)
}

func newFakeRepositories() *repository.Repositories {
	repos := &repository.Repositories{
		Company:  newFakeCompanyRepo(),
		Investor: newFakeInvestorRepo(),
		Match:    newFakeMatchRepo(),
		Weights:  newFakeWeightsRepo(),
		User:     newFakeUserRepo(),
	}
	repos.Tx = &fakeTxManager{repos: repos}
	return repos
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []email.MatchNotification
}

func (n *fakeNotifier) SendMatchNotification(_ context.Context, data email.MatchNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, data)
	return nil
}

func (n *fakeNotifier) Enabled() bool { return true }

func (n *fakeNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
