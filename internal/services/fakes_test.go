package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"eventhub/internal/domain"
)

const testTimeout = 5 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository. Create enforces username uniqueness like the primary key does.
type fakeUserRepo struct {
	mu         sync.Mutex
	byUsername map[string]*domain.User
	createErr  error
	getErr     error
	existsErr  error
	// hideExists makes UsernameExists always report false, simulating a lost pre-check race.
	hideExists bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[u.Username]; ok {
		return domain.ErrDuplicateUsername
	}
	f.byUsername[u.Username] = u
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byUsername[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	if f.hideExists {
		return false, nil
	}
	_, ok := f.byUsername[username]
	return ok, nil
}

// fakeOrganiserRepo writes the user through users so both share one username space.
type fakeOrganiserRepo struct {
	users     *fakeUserRepo
	profiles  map[string]*domain.OrganiserProfile
	createErr error
	getErr    error
}

func newFakeOrganiserRepo(users *fakeUserRepo) *fakeOrganiserRepo {
	return &fakeOrganiserRepo{users: users, profiles: make(map[string]*domain.OrganiserProfile)}
}

func (f *fakeOrganiserRepo) CreateWithUser(ctx context.Context, u *domain.User, p *domain.OrganiserProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	if err := f.users.Create(ctx, u); err != nil {
		return err
	}
	f.profiles[p.Username] = p
	return nil
}

func (f *fakeOrganiserRepo) GetByUsername(ctx context.Context, username string) (*domain.OrganiserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.profiles[username]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

// fakeEventRepo is an in-memory EventRepository assigning ascending ids.
type fakeEventRepo struct {
	byID      map[int64]*domain.Event
	nextID    int64
	createErr error
	listErr   error
	listCalls int
	// afterList runs once ListAll has taken its snapshot, before it returns.
	afterList func()
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	e.ID = f.nextID
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByOrganiser(ctx context.Context, organiser string) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.sorted() {
		if e.Organiser == organiser {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.sorted()
	if hook := f.afterList; hook != nil {
		f.afterList = nil
		hook()
	}
	return out, nil
}

func (f *fakeEventRepo) sorted() []*domain.Event {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// fakeCertRepo is an in-memory CertificateRepository.
type fakeCertRepo struct {
	certs     []*domain.Certificate
	createErr error
}

func (f *fakeCertRepo) Create(ctx context.Context, c *domain.Certificate) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.certs = append(f.certs, c)
	return nil
}

func (f *fakeCertRepo) ListByParticipant(ctx context.Context, participant string) ([]*domain.Certificate, error) {
	var out []*domain.Certificate
	for _, c := range f.certs {
		if c.Participant == participant {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCertRepo) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Certificate, error) {
	var out []*domain.Certificate
	for _, c := range f.certs {
		if c.EventID == eventID {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error)              { return "salt", nil }
func (fakePasswordHasher) Hash(salt, password string) (string, error) { return salt + ":" + password, nil }
func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(username string, role domain.Role, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + username + "-" + string(role), nil
}

// fakeEmailService records welcome messages.
type fakeEmailService struct {
	sent []*domain.WelcomeMessageEmailData
	err  error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}

// fakeEventCache is an in-memory EventCache with the same generation rule as the Redis one.
type fakeEventCache struct {
	events      []*domain.Event
	ok          bool
	gen         int64
	getErr      error
	invalidated int
}

func (f *fakeEventCache) GetAll(ctx context.Context) ([]*domain.Event, int64, bool, error) {
	if f.getErr != nil {
		return nil, 0, false, f.getErr
	}
	return f.events, f.gen, f.ok, nil
}

func (f *fakeEventCache) SetAll(ctx context.Context, gen int64, events []*domain.Event) error {
	if gen != f.gen {
		return nil
	}
	f.events, f.ok = events, true
	return nil
}

func (f *fakeEventCache) Invalidate(ctx context.Context) error {
	f.events, f.ok = nil, false
	f.gen++
	f.invalidated++
	return nil
}

// fakeRenderer wraps text in a paragraph.
type fakeRenderer struct{}

func (fakeRenderer) Render(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	return "<p>" + text + "</p>", nil
}
