package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProfileRepo is a map-backed ProfileRepository.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]models.UserProfile)}
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := p
	return &copied, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeProfileRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.profiles[id]
	return ok, nil
}

func (r *fakeProfileRepo) List(ctx context.Context, limit, offset int) ([]*models.UserProfile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.UserProfile
	for _, p := range r.profiles {
		copied := p
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProfileRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.profiles)), nil
}

func (r *fakeProfileRepo) CountByBranch(ctx context.Context) (map[models.Branch]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[models.Branch]int64)
	for _, p := range r.profiles {
		if p.Branch != "" {
			out[p.Branch]++
		}
	}
	return out, nil
}

// fakePaperRepo returns fixed counts and not-found for everything else.
type fakePaperRepo struct {
	count  int64
	nextID uint
	papers map[uint]models.Paper
}

func (r *fakePaperRepo) GetByID(ctx context.Context, id uint) (*models.Paper, error) {
	if paper, ok := r.papers[id]; ok {
		copied := paper
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakePaperRepo) Create(ctx context.Context, paper *models.Paper) error {
	if r.papers == nil {
		r.papers = make(map[uint]models.Paper)
	}
	r.nextID++
	paper.ID = r.nextID
	r.papers[paper.ID] = *paper
	return nil
}
func (r *fakePaperRepo) Update(ctx context.Context, paper *models.Paper) error {
	if _, ok := r.papers[paper.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.papers[paper.ID] = *paper
	return nil
}
func (r *fakePaperRepo) Delete(ctx context.Context, id uint) error {
	delete(r.papers, id)
	return nil
}
func (r *fakePaperRepo) List(ctx context.Context, filters repositories.PaperFilters) ([]*models.Paper, int64, error) {
	return nil, 0, nil
}
func (r *fakePaperRepo) Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error) {
	return nil, nil
}
func (r *fakePaperRepo) IncrementViewCount(ctx context.Context, id uint) error     { return nil }
func (r *fakePaperRepo) IncrementDownloadCount(ctx context.Context, id uint) error { return nil }
func (r *fakePaperRepo) Count(ctx context.Context) (int64, error)                  { return r.count, nil }

type fakeMaterialRepo struct {
	count    int64
	subjects []string
}

func (r *fakeMaterialRepo) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeMaterialRepo) Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error) {
	return r.subjects, nil
}
func (r *fakeMaterialRepo) Create(ctx context.Context, material *models.Material) error { return nil }
func (r *fakeMaterialRepo) Update(ctx context.Context, material *models.Material) error { return nil }
func (r *fakeMaterialRepo) Delete(ctx context.Context, id uint) error                   { return nil }
func (r *fakeMaterialRepo) List(ctx context.Context, filters repositories.MaterialFilters) ([]*models.Material, int64, error) {
	return nil, 0, nil
}
func (r *fakeMaterialRepo) IncrementViewCount(ctx context.Context, id uint) error { return nil }
func (r *fakeMaterialRepo) Count(ctx context.Context) (int64, error)              { return r.count, nil }

type fakeEventRepo struct {
	count   int64
	created []*models.ClubEvent
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*models.ClubEvent, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeEventRepo) Create(ctx context.Context, event *models.ClubEvent) error {
	r.created = append(r.created, event)
	return nil
}
func (r *fakeEventRepo) Delete(ctx context.Context, id string) error { return nil }
func (r *fakeEventRepo) List(ctx context.Context, filters repositories.EventFilters) ([]*models.ClubEvent, int64, error) {
	return r.created, int64(len(r.created)), nil
}
func (r *fakeEventRepo) Count(ctx context.Context) (int64, error) { return r.count, nil }

type fakeUserRepo struct{}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.IdentityUser, error) {
	return &models.IdentityUser{ID: id, Role: models.RoleStudent}, nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.IdentityUser, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) { return true, nil }
func (r *fakeUserRepo) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	return role == models.RoleStudent, nil
}

// fakeRepository aggregates the fakes behind the Repository interface.
type fakeRepository struct {
	profiles  *fakeProfileRepo
	papers    *fakePaperRepo
	materials *fakeMaterialRepo
	events    *fakeEventRepo
	users     *fakeUserRepo
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		profiles:  newFakeProfileRepo(),
		papers:    &fakePaperRepo{},
		materials: &fakeMaterialRepo{},
		events:    &fakeEventRepo{},
		users:     &fakeUserRepo{},
	}
}

func (r *fakeRepository) Profile() repositories.ProfileRepository     { return r.profiles }
func (r *fakeRepository) Paper() repositories.PaperRepository         { return r.papers }
func (r *fakeRepository) Material() repositories.MaterialRepository   { return r.materials }
func (r *fakeRepository) ClubEvent() repositories.ClubEventRepository { return r.events }
func (r *fakeRepository) User() repositories.UserRepository           { return r.users }

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }
