package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"tradesim/internal/adapters/logger"
	"tradesim/internal/domain"
	"tradesim/internal/domain/catalog"
	"tradesim/internal/domain/price"
	"tradesim/internal/domain/token"
)

const fetchKey = "quotes"

var (
	ErrStopped        = errors.New("feed stopped")
	ErrAlreadyStarted = errors.New("feed already started")
	errNoQuotes       = errors.New("provider returned no quotes")
)

// Snapshot is a copy of the feed state at one point in time.
type Snapshot struct {
	Quotes    []price.Quote
	Catalog   catalog.Catalog
	Loading   bool
	Err       error
	UpdatedAt time.Time
	Source    string
}

type Options struct {
	Seed     []token.Token
	Primary  price.Provider
	Fallback price.Provider
	Limiter  domain.RateLimiterService
	Metrics  *Metrics
	Logger   *logger.Logger
	Clock    func() time.Time

	RefreshInterval time.Duration
	DedupeInterval  time.Duration
	RetryCount      int
	RetryInterval   time.Duration
	RequestTimeout  time.Duration
}

// Service keeps the token catalog in sync with the upstream price providers.
type Service struct {
	seed      []token.Token
	providers []price.Provider
	limiter   domain.RateLimiterService
	metrics   *Metrics
	logger    *logger.Logger
	now       func() time.Time

	refreshInterval time.Duration
	dedupeInterval  time.Duration
	retryCount      int
	retryInterval   time.Duration
	requestTimeout  time.Duration

	group  singleflight.Group
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.RWMutex
	seq           uint64
	applied       uint64
	leaderSeq     uint64
	leaderStarted time.Time
	inflight      int
	quotes        []price.Quote
	current       catalog.Catalog
	lastErr       error
	updatedAt     time.Time
	source        string
	started       bool
	stopped       bool

	// deliverMu serialises subscriber callbacks with Subscribe, Dispose and Stop.
	deliverMu sync.Mutex
	subs      map[uint64]func(Snapshot)
	nextSub   uint64
}

func NewService(opts Options) (*Service, error) {
	if opts.Primary == nil {
		return nil, errors.New("feed: primary provider is required")
	}
	if len(opts.Seed) == 0 {
		return nil, errors.New("feed: seed list is empty")
	}

	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 30 * time.Second
	}
	if opts.DedupeInterval <= 0 {
		opts.DedupeInterval = 15 * time.Second
	}
	if opts.RetryCount < 0 {
		opts.RetryCount = 0
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 5 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	seed := make([]token.Token, len(opts.Seed))
	for i, t := range opts.Seed {
		seed[i] = t.Clone()
	}

	providers := []price.Provider{opts.Primary}
	if opts.Fallback != nil {
		providers = append(providers, opts.Fallback)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		seed:            seed,
		providers:       providers,
		limiter:         opts.Limiter,
		metrics:         opts.Metrics,
		logger:          opts.Logger.Named("feed"),
		now:             opts.Clock,
		refreshInterval: opts.RefreshInterval,
		dedupeInterval:  opts.DedupeInterval,
		retryCount:      opts.RetryCount,
		retryInterval:   opts.RetryInterval,
		requestTimeout:  opts.RequestTimeout,
		ctx:             ctx,
		cancel:          cancel,
		current:         catalog.Merge(seed, nil),
		subs:            make(map[uint64]func(Snapshot)),
	}, nil
}

// Snapshot returns the current feed state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Catalog returns the current merged catalog.
func (s *Service) Catalog() catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.current)
}

// Fetch refreshes the feed unless a successful refresh completed within the dedupe
// interval, in which case that result is returned without a network call.
func (s *Service) Fetch(ctx context.Context) (Snapshot, error) {
	s.mu.RLock()
	fresh := s.lastErr == nil && !s.updatedAt.IsZero() && s.now().Sub(s.updatedAt) < s.dedupeInterval
	s.mu.RUnlock()

	if fresh {
		return s.Snapshot(), nil
	}
	return s.Refresh(ctx)
}

// Refresh always asks upstream, but joins a request that started less than the dedupe
// interval ago. ctx only bounds the wait; the shared request runs on the service context.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return s.Snapshot(), ErrStopped
	}
	if !s.leaderStarted.IsZero() && s.now().Sub(s.leaderStarted) >= s.dedupeInterval {
		// too old to join; the next caller starts a new request
		s.group.Forget(fetchKey)
		s.leaderStarted = time.Time{}
	}
	s.mu.Unlock()

	ch := s.group.DoChan(fetchKey, func() (interface{}, error) {
		return s.fetch()
	})

	select {
	case res := <-ch:
		snap, _ := res.Val.(Snapshot)
		return snap, res.Err
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}

func (s *Service) fetch() (Snapshot, error) {
	seq, ok := s.begin()
	if !ok {
		return s.Snapshot(), ErrStopped
	}

	quotes, source, err := s.fetchQuotes(s.ctx)
	return s.commit(seq, quotes, source, err)
}

func (s *Service) begin() (uint64, bool) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return 0, false
	}
	s.seq++
	seq := s.seq
	s.leaderSeq = seq
	s.leaderStarted = s.now()
	s.inflight++
	s.mu.Unlock()

	s.notify()
	return seq, true
}

func (s *Service) commit(seq uint64, quotes []price.Quote, source string, fetchErr error) (Snapshot, error) {
	s.mu.Lock()
	s.inflight--
	if s.leaderSeq == seq {
		s.leaderStarted = time.Time{}
	}

	if s.stopped {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, ErrStopped
	}

	if seq < s.applied {
		applied := s.applied
		snap := s.snapshotLocked()
		s.mu.Unlock()

		s.metrics.observeSuperseded()
		s.logger.Debug("discarding superseded feed result",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", applied),
		)
		s.notify()
		return snap, snap.Err
	}

	s.applied = seq
	if fetchErr != nil {
		s.lastErr = fmt.Errorf("%w: %w", price.ErrFeedUnavailable, fetchErr)
	} else {
		s.quotes = slices.Clone(quotes)
		s.current = catalog.Merge(s.seed, quotes)
		s.lastErr = nil
		s.updatedAt = s.now()
		s.source = source
		s.metrics.observeSuccess(s.updatedAt)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if fetchErr != nil {
		s.logger.Warn("price feed unavailable", zap.Uint64("seq", seq), zap.Error(fetchErr))
	} else {
		s.logger.Info("price feed updated",
			zap.Uint64("seq", seq),
			zap.String("source", source),
			zap.Int("quotes", len(quotes)),
		)
	}

	s.notify()
	return snap, snap.Err
}

func (s *Service) fetchQuotes(ctx context.Context) ([]price.Quote, string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retryCount; attempt++ {
		if attempt > 0 {
			s.logger.Info("retrying price feed", zap.Int("attempt", attempt), zap.Duration("delay", s.retryInterval))
			if err := sleep(ctx, s.retryInterval); err != nil {
				return nil, "", err
			}
		}

		for _, p := range s.providers {
			quotes, err := s.attempt(ctx, p)
			if err == nil {
				return quotes, p.Name(), nil
			}
			lastErr = err
			s.logger.Warn("price feed attempt failed",
				zap.String("provider", p.Name()),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
		}
	}
	return nil, "", lastErr
}

func (s *Service) attempt(ctx context.Context, p price.Provider) ([]price.Quote, error) {
	if s.limiter != nil {
		if err := s.limiter.Allow(ctx); err != nil {
			s.metrics.observeAttempt(p.Name(), "throttled")
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	quotes, err := p.GetQuotes(reqCtx)
	if err == nil && len(quotes) == 0 {
		err = errNoQuotes
	}
	if err != nil {
		s.metrics.observeAttempt(p.Name(), "error")
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}

	s.metrics.observeAttempt(p.Name(), "ok")
	return quotes, nil
}

// Start polls every refresh interval, fetching once immediately.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrStopped
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	pollCtx, cancel := context.WithCancel(ctx)
	stopOnShutdown := context.AfterFunc(s.ctx, cancel)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer stopOnShutdown()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("price feed poller panic recovered", zap.Any("panic", r))
			}
		}()

		s.poll(pollCtx)
	}()

	return nil
}

func (s *Service) poll(ctx context.Context) {
	s.tick(ctx)

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("price feed polling stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Service) tick(ctx context.Context) {
	_, err := s.Fetch(ctx)
	if err == nil || errors.Is(err, ErrStopped) || errors.Is(err, context.Canceled) {
		return
	}
	s.logger.Debug("scheduled refresh failed", zap.Error(err))
}

// Stop cancels polling and any in-flight request. Results that arrive later are
// discarded and no subscriber is called once Stop returns.
func (s *Service) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	// wait out a delivery already in progress
	s.deliverMu.Lock()
	s.deliverMu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	s    *Service
	id   uint64
	once sync.Once
}

// Subscribe registers fn for every state change. Callbacks run on the goroutine that
// changed the state and must not call Dispose, Stop, Fetch or Refresh synchronously.
func (s *Service) Subscribe(fn func(Snapshot)) *Subscription {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.nextSub++
	s.subs[s.nextSub] = fn
	return &Subscription{s: s, id: s.nextSub}
}

// Dispose unregisters the callback. It is not called again after Dispose returns.
func (sub *Subscription) Dispose() {
	sub.once.Do(func() {
		sub.s.deliverMu.Lock()
		delete(sub.s.subs, sub.id)
		sub.s.deliverMu.Unlock()
	})
}

func (s *Service) notify() {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.RLock()
	if s.stopped || len(s.subs) == 0 {
		s.mu.RUnlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.RUnlock()

	for _, fn := range s.subs {
		fn(snap)
	}
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		Quotes:    slices.Clone(s.quotes),
		Catalog:   slices.Clone(s.current),
		Loading:   s.inflight > 0,
		Err:       s.lastErr,
		UpdatedAt: s.updatedAt,
		Source:    s.source,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
