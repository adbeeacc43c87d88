package service_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/catpage/internal/content"
	"github.com/mtlprog/catpage/internal/domain"
	"github.com/mtlprog/catpage/internal/page"
	"github.com/mtlprog/catpage/internal/repository"
	"github.com/mtlprog/catpage/internal/service"
)

// PageServiceTestSuite is the test suite for PageService.
type PageServiceTestSuite struct {
	suite.Suite
	store     *repository.MemoryStore
	svc       *service.PageService
	sessionID string
}

// SetupTest runs before each test.
func (s *PageServiceTestSuite) SetupTest() {
	s.store = repository.NewMemoryStore()
	s.svc = service.NewPageService(s.store, time.Minute, page.WithRand(rand.New(rand.NewPCG(3, 4))))
	s.sessionID = uuid.NewString()
}

func TestPageServiceSuite(t *testing.T) {
	suite.Run(t, new(PageServiceTestSuite))
}

func (s *PageServiceTestSuite) TestView_NewSessionDefaults() {
	ctx := context.Background()

	view, err := s.svc.View(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Equal(domain.TabAbout, view.ActiveTab)
	s.True(content.IsFunFact(view.FunFact))
	for _, b := range view.Breeds {
		s.Zero(b.Rating)
	}

	// First visit is persisted.
	stored, err := s.store.Load(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Equal(view.FunFact, stored.FunFact)
	s.Equal(1, s.svc.ActiveSessions())
}

func (s *PageServiceTestSuite) TestView_RejectsMalformedSession() {
	_, err := s.svc.View(context.Background(), "not-a-uuid")
	s.ErrorIs(err, domain.ErrInvalidSession)
	s.Zero(s.svc.ActiveSessions())
}

func (s *PageServiceTestSuite) TestRateBreed_PersistsAndIsolatesSessions() {
	ctx := context.Background()
	other := uuid.NewString()

	view, err := s.svc.RateBreed(ctx, s.sessionID, 0, 4)
	s.Require().NoError(err)
	s.Equal(4, view.Breeds[0].Rating)

	stored, err := s.store.Load(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Equal([]int{4, 0, 0, 0, 0}, stored.Ratings)

	otherView, err := s.svc.View(ctx, other)
	s.Require().NoError(err)
	s.Zero(otherView.Breeds[0].Rating)
}

func (s *PageServiceTestSuite) TestRateBreed_InvalidInput() {
	ctx := context.Background()

	_, err := s.svc.RateBreed(ctx, s.sessionID, 7, 3)
	s.ErrorIs(err, domain.ErrBreedNotFound)

	_, err = s.svc.RateBreed(ctx, s.sessionID, 1, 0)
	s.ErrorIs(err, domain.ErrInvalidRating)

	stored, err := s.store.Load(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Equal([]int{0, 0, 0, 0, 0}, stored.Ratings)
}

func (s *PageServiceTestSuite) TestSelectTab() {
	ctx := context.Background()

	view, err := s.svc.SelectTab(ctx, s.sessionID, domain.TabCare)
	s.Require().NoError(err)
	s.Equal(domain.TabCare, view.ActiveTab)

	_, err = s.svc.SelectTab(ctx, s.sessionID, domain.Tab("faq"))
	s.ErrorIs(err, domain.ErrInvalidTab)

	stored, err := s.store.Load(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Equal(domain.TabCare, stored.ActiveTab)
}

func (s *PageServiceTestSuite) TestShuffleFact() {
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		view, err := s.svc.ShuffleFact(ctx, s.sessionID)
		s.Require().NoError(err)
		s.True(content.IsFunFact(view.FunFact))

		stored, err := s.store.Load(ctx, s.sessionID)
		s.Require().NoError(err)
		s.Equal(view.FunFact, stored.FunFact)
	}
}

func (s *PageServiceTestSuite) TestRestoresFromStoreAfterEviction() {
	ctx := context.Background()

	_, err := s.svc.RateBreed(ctx, s.sessionID, 2, 5)
	s.Require().NoError(err)
	_, err = s.svc.SelectTab(ctx, s.sessionID, domain.TabBreeds)
	s.Require().NoError(err)

	s.Equal(1, s.svc.EvictIdle(time.Now().Add(2*time.Minute)))
	s.Zero(s.svc.ActiveSessions())

	view, err := s.svc.View(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Equal(5, view.Breeds[2].Rating)
	s.Equal(domain.TabBreeds, view.ActiveTab)
}

func (s *PageServiceTestSuite) TestEvictIdle_KeepsRecent() {
	_, err := s.svc.View(context.Background(), s.sessionID)
	s.Require().NoError(err)

	s.Zero(s.svc.EvictIdle(time.Now()))
	s.Equal(1, s.svc.ActiveSessions())
}

func (s *PageServiceTestSuite) TestCorruptStateStartsFresh() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, &domain.PageState{
		SessionID: s.sessionID,
		ActiveTab: domain.TabCare,
		FunFact:   "Dogs bark.",
		Ratings:   []int{1, 1, 1, 1, 1},
	}))

	view, err := s.svc.View(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Equal(domain.TabAbout, view.ActiveTab)
	s.Zero(view.Breeds[0].Rating)
}

func (s *PageServiceTestSuite) TestResetRatings() {
	ctx := context.Background()
	_, err := s.svc.RateBreed(ctx, s.sessionID, 1, 3)
	s.Require().NoError(err)

	n, err := s.svc.ResetRatings(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)
	s.Equal(1, s.svc.ActiveSessions())

	view, err := s.svc.View(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Zero(view.Breeds[1].Rating)
}

func (s *PageServiceTestSuite) TestResetRatings_NotifiesOpenSubscribers() {
	ctx := context.Background()
	_, err := s.svc.RateBreed(ctx, s.sessionID, 0, 5)
	s.Require().NoError(err)

	var mu sync.Mutex
	var ratings [][]int
	stop, err := s.svc.Subscribe(ctx, s.sessionID, func(v page.View) {
		mu.Lock()
		defer mu.Unlock()
		r := make([]int, 0, len(v.Breeds))
		for _, b := range v.Breeds {
			r = append(r, b.Rating)
		}
		ratings = append(ratings, r)
	})
	s.Require().NoError(err)
	defer stop()

	_, err = s.svc.ResetRatings(ctx)
	s.Require().NoError(err)
	_, err = s.svc.SelectTab(ctx, s.sessionID, domain.TabCare)
	s.Require().NoError(err)

	mu.Lock()
	defer mu.Unlock()
	s.Equal([][]int{{0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}}, ratings)

	stored, err := s.store.Load(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Equal([]int{0, 0, 0, 0, 0}, stored.Ratings)
	s.Equal(domain.TabCare, stored.ActiveTab)
}

// A reset run from another process (the reset-ratings command) must not be
// undone by the server's next write to the same session.
func (s *PageServiceTestSuite) TestResetRatings_FromOtherProcessSticks() {
	ctx := context.Background()
	cli := service.NewPageService(s.store, time.Minute)

	_, err := s.svc.RateBreed(ctx, s.sessionID, 0, 5)
	s.Require().NoError(err)

	n, err := cli.ResetRatings(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	_, err = s.svc.SelectTab(ctx, s.sessionID, domain.TabCare)
	s.Require().NoError(err)
	_, err = s.svc.ShuffleFact(ctx, s.sessionID)
	s.Require().NoError(err)

	stored, err := s.store.Load(ctx, s.sessionID)
	s.Require().NoError(err)
	s.Equal([]int{0, 0, 0, 0, 0}, stored.Ratings)
	s.Equal(domain.TabCare, stored.ActiveTab)
}

func (s *PageServiceTestSuite) TestEvictIdle_KeepsSubscribedSessions() {
	ctx := context.Background()

	var mu sync.Mutex
	calls := 0
	stop, err := s.svc.Subscribe(ctx, s.sessionID, func(page.View) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	s.Require().NoError(err)

	s.Zero(s.svc.EvictIdle(time.Now().Add(2 * time.Minute)))
	s.Equal(1, s.svc.ActiveSessions())

	_, err = s.svc.SelectTab(ctx, s.sessionID, domain.TabCare)
	s.Require().NoError(err)

	mu.Lock()
	s.Equal(1, calls)
	mu.Unlock()

	// Once the stream is gone the session is evictable again.
	stop()
	s.Equal(1, s.svc.EvictIdle(time.Now().Add(2*time.Minute)))
}

func (s *PageServiceTestSuite) TestView_ConcurrentFirstVisitSharesOneLoad() {
	ctx := context.Background()
	svc := service.NewPageService(s.store, time.Minute)

	const visitors = 16
	facts := make([]string, visitors)
	errs := make([]error, visitors)

	var start, wg sync.WaitGroup
	start.Add(1)
	for i := range visitors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start.Wait()
			view, err := svc.View(ctx, s.sessionID)
			facts[i], errs[i] = view.FunFact, err
		}()
	}
	start.Done()
	wg.Wait()

	for _, err := range errs {
		s.Require().NoError(err)
	}

	stored, err := s.store.Load(ctx, s.sessionID)
	s.Require().NoError(err)
	for _, fact := range facts {
		s.Equal(stored.FunFact, fact)
	}
	s.Equal(1, svc.ActiveSessions())
}

func (s *PageServiceTestSuite) TestSubscribe() {
	ctx := context.Background()

	var mu sync.Mutex
	var tabs []domain.Tab
	stop, err := s.svc.Subscribe(ctx, s.sessionID, func(v page.View) {
		mu.Lock()
		tabs = append(tabs, v.ActiveTab)
		mu.Unlock()
	})
	s.Require().NoError(err)

	_, err = s.svc.SelectTab(ctx, s.sessionID, domain.TabBreeds)
	s.Require().NoError(err)
	stop()
	_, err = s.svc.SelectTab(ctx, s.sessionID, domain.TabCare)
	s.Require().NoError(err)

	mu.Lock()
	defer mu.Unlock()
	s.Equal([]domain.Tab{domain.TabBreeds}, tabs)
}

func (s *PageServiceTestSuite) TestStoreFailure() {
	svc := service.NewPageService(failingStore{}, time.Minute)

	_, err := svc.View(context.Background(), s.sessionID)
	s.ErrorIs(err, errStoreDown)
	s.ErrorIs(svc.Ping(context.Background()), errStoreDown)
}

func (s *PageServiceTestSuite) TestRunEvictionStopsOnCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.svc.RunEviction(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("RunEviction did not return after cancel")
	}
}

var errStoreDown = errors.New("store down")

type failingStore struct{}

func (failingStore) Load(context.Context, string) (*domain.PageState, error) {
	return nil, errStoreDown
}

func (failingStore) Put(context.Context, *domain.PageState) error {
	return errStoreDown
}

func (failingStore) SaveRating(context.Context, string, int, int) error {
	return errStoreDown
}

func (failingStore) SaveSession(context.Context, string, domain.Tab, string) error {
	return errStoreDown
}

func (failingStore) ResetRatings(context.Context) (int64, error) {
	return 0, errStoreDown
}

func (failingStore) Ping(context.Context) error {
	return errStoreDown
}
