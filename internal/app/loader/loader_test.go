package loader_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/goleak"

	"github.com/jsamuelsen11/company-directory/internal/app/loader"
	"github.com/jsamuelsen11/company-directory/internal/domain"
	"github.com/jsamuelsen11/company-directory/internal/domain/company"
	"github.com/jsamuelsen11/company-directory/internal/platform/config"
	"github.com/jsamuelsen11/company-directory/internal/platform/telemetry"
	"github.com/jsamuelsen11/company-directory/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var sample = []company.Company{
	{ID: "1", Name: "Acme Corp"},
	{ID: "2", Name: "Globex"},
}

func testConfig(retries int, delay time.Duration) *config.DirectoryConfig {
	return &config.DirectoryConfig{
		Source: config.SourceStatic,
		Retry:  config.DirectoryRetryConfig{MaxRetries: retries, Delay: delay},
	}
}

func waitSettled(t *testing.T, l *loader.Loader) loader.Snapshot {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, l.Wait(ctx))
	return l.Snapshot()
}

// scriptedSource returns results in order, one per call, and can block a call
// until released.
type scriptedSource struct {
	mu      sync.Mutex
	results []result
	calls   atomic.Int32
}

type result struct {
	companies []company.Company
	err       error
	block     chan struct{}
}

func (s *scriptedSource) ListCompanies(ctx context.Context) ([]company.Company, error) {
	n := int(s.calls.Add(1)) - 1

	s.mu.Lock()
	r := s.results[min(n, len(s.results)-1)]
	s.mu.Unlock()

	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.companies, r.err
}

func TestLoader_InitialState(t *testing.T) {
	src := mocks.NewMockCompanySource(t)
	l := loader.New(testConfig(1, 0), src, nil, nil)
	defer l.Close()

	snap := l.Snapshot()
	require.Equal(t, loader.StateIdle, snap.State)
	require.Nil(t, snap.Companies)
	require.Nil(t, l.Companies())
	require.NoError(t, l.Wait(context.Background()))
	require.ErrorContains(t, l.HealthCheck(context.Background()), "not started")
}

func TestLoader_SuccessOnFirstAttempt(t *testing.T) {
	src := mocks.NewMockCompanySource(t)
	src.EXPECT().ListCompanies(mock.Anything).Return(sample, nil).Once()

	l := loader.New(testConfig(1, time.Second), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())

	snap := waitSettled(t, l)
	require.Equal(t, loader.StateSuccess, snap.State)
	require.Equal(t, sample, snap.Companies)
	require.NoError(t, snap.Err)
	require.Equal(t, 1, snap.Attempts)
	require.False(t, snap.LoadedAt.IsZero())
	require.NoError(t, l.HealthCheck(context.Background()))
}

func TestLoader_EmptyCollectionIsSuccess(t *testing.T) {
	src := mocks.NewMockCompanySource(t)
	src.EXPECT().ListCompanies(mock.Anything).Return(nil, nil).Once()

	l := loader.New(testConfig(1, 0), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())

	snap := waitSettled(t, l)
	require.Equal(t, loader.StateSuccess, snap.State)
	require.NotNil(t, snap.Companies)
	require.Empty(t, snap.Companies)
}

func TestLoader_RetriesOnceAfterDelay(t *testing.T) {
	const delay = 80 * time.Millisecond

	var firstAt, secondAt time.Time
	src := &scriptedSource{results: []result{
		{err: errors.New("connection refused")},
		{companies: sample},
	}}
	recording := sourceFunc(func(ctx context.Context) ([]company.Company, error) {
		if src.calls.Load() == 0 {
			firstAt = time.Now()
		} else {
			secondAt = time.Now()
		}
		return src.ListCompanies(ctx)
	})

	l := loader.New(testConfig(1, delay), recording, nil, nil)
	defer l.Close()
	l.Start(context.Background())

	// The failed first attempt stays invisible: still loading.
	time.Sleep(delay / 2)
	require.Equal(t, loader.StateLoading, l.Snapshot().State)

	snap := waitSettled(t, l)
	require.Equal(t, loader.StateSuccess, snap.State)
	require.Equal(t, 2, snap.Attempts)
	require.Equal(t, int32(2), src.calls.Load())
	require.GreaterOrEqual(t, secondAt.Sub(firstAt), delay)
}

func TestLoader_ErrorAfterRetryBudget(t *testing.T) {
	cause := errors.New("HTTP 500")
	src := mocks.NewMockCompanySource(t)
	src.EXPECT().ListCompanies(mock.Anything).Return(nil, cause).Twice()

	l := loader.New(testConfig(1, 10*time.Millisecond), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())

	snap := waitSettled(t, l)
	require.Equal(t, loader.StateError, snap.State)
	require.Equal(t, 2, snap.Attempts)
	require.ErrorIs(t, snap.Err, domain.ErrFetchFailed)
	require.ErrorIs(t, snap.Err, cause)
	require.ErrorContains(t, snap.Err, "HTTP 500")
	require.ErrorContains(t, l.HealthCheck(context.Background()), "failing")
}

func TestLoader_ZeroRetries(t *testing.T) {
	src := mocks.NewMockCompanySource(t)
	src.EXPECT().ListCompanies(mock.Anything).Return(nil, errors.New("boom")).Once()

	l := loader.New(testConfig(0, time.Hour), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())

	snap := waitSettled(t, l)
	require.Equal(t, loader.StateError, snap.State)
	require.Equal(t, 1, snap.Attempts)
}

func TestLoader_RetryOnlyFromError(t *testing.T) {
	src := &scriptedSource{results: []result{
		{err: errors.New("down")},
		{companies: sample},
	}}

	l := loader.New(testConfig(0, 0), src, nil, nil)
	defer l.Close()

	require.ErrorIs(t, l.Retry(), loader.ErrNotFailed, "idle")

	l.Start(context.Background())
	require.Equal(t, loader.StateError, waitSettled(t, l).State)

	require.NoError(t, l.Retry())
	snap := waitSettled(t, l)
	require.Equal(t, loader.StateSuccess, snap.State)
	require.Equal(t, sample, snap.Companies)

	require.ErrorIs(t, l.Retry(), loader.ErrNotFailed, "success")
}

func TestLoader_StartIsIdempotent(t *testing.T) {
	src := mocks.NewMockCompanySource(t)
	src.EXPECT().ListCompanies(mock.Anything).Return(sample, nil).Once()

	l := loader.New(testConfig(0, 0), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())
	waitSettled(t, l)
	l.Start(context.Background())
	waitSettled(t, l)
}

func TestLoader_RefetchSupersedesInFlightLoad(t *testing.T) {
	stale := []company.Company{{ID: "old", Name: "Stale"}}
	fresh := []company.Company{{ID: "new", Name: "Fresh"}}

	release := make(chan struct{})
	src := &scriptedSource{results: []result{
		{companies: stale, block: release},
		{companies: fresh},
	}}

	l := loader.New(testConfig(1, 0), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	l.Refetch()
	close(release)

	snap := waitSettled(t, l)
	require.Equal(t, loader.StateSuccess, snap.State)
	require.Equal(t, fresh, snap.Companies)
	require.Equal(t, int32(2), src.calls.Load())
}

func TestLoader_RefetchKeepsPreviousCollectionWhileLoading(t *testing.T) {
	release := make(chan struct{})
	src := &scriptedSource{results: []result{
		{companies: sample},
		{companies: sample, block: release},
	}}

	l := loader.New(testConfig(0, 0), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())
	waitSettled(t, l)

	l.Refetch()
	snap := l.Snapshot()
	require.Equal(t, loader.StateLoading, snap.State)
	require.Equal(t, sample, snap.Companies)
	require.NoError(t, l.HealthCheck(context.Background()))

	close(release)
	require.Equal(t, loader.StateSuccess, waitSettled(t, l).State)
}

func TestLoader_FailedRefetchOverHeldCollectionIsFailing(t *testing.T) {
	src := &scriptedSource{results: []result{
		{companies: sample},
		{err: errors.New("HTTP 503")},
	}}

	l := loader.New(testConfig(0, 0), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())
	require.Equal(t, loader.StateSuccess, waitSettled(t, l).State)

	l.Refetch()
	snap := waitSettled(t, l)
	require.Equal(t, loader.StateError, snap.State)
	require.Equal(t, sample, snap.Companies)
	require.ErrorIs(t, snap.Err, domain.ErrFetchFailed)
	require.ErrorContains(t, l.HealthCheck(context.Background()), "failing")
}

func TestLoader_RefetchBeforeStart(t *testing.T) {
	src := mocks.NewMockCompanySource(t)
	src.EXPECT().ListCompanies(mock.Anything).Return(sample, nil).Once()

	l := loader.New(testConfig(0, 0), src, nil, nil)
	defer l.Close()
	l.Refetch()

	require.Equal(t, loader.StateSuccess, waitSettled(t, l).State)
}

func TestLoader_WaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	src := &scriptedSource{results: []result{{companies: sample, block: release}}}

	l := loader.New(testConfig(0, 0), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, l.Wait(ctx), context.DeadlineExceeded)
	require.Equal(t, loader.StateLoading, l.Snapshot().State)
	require.ErrorContains(t, l.HealthCheck(context.Background()), "degraded")
}

func TestLoader_CloseCancelsRetryDelay(t *testing.T) {
	src := mocks.NewMockCompanySource(t)
	src.EXPECT().ListCompanies(mock.Anything).Return(nil, errors.New("down")).Once()

	l := loader.New(testConfig(1, time.Hour), src, nil, nil)
	l.Start(context.Background())
	require.Eventually(t, func() bool { return l.Snapshot().Attempts == 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		l.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not interrupt the retry delay")
	}

	require.NoError(t, l.Wait(context.Background()))
	l.Refetch()
	require.ErrorIs(t, l.Retry(), loader.ErrNotFailed)
}

func TestLoader_StartContextCancellationDoesNotAbortLoad(t *testing.T) {
	src := mocks.NewMockCompanySource(t)
	src.EXPECT().ListCompanies(mock.Anything).Return(sample, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	l := loader.New(testConfig(0, 0), src, nil, nil)
	defer l.Close()
	l.Start(ctx)
	cancel()

	require.Equal(t, loader.StateSuccess, waitSettled(t, l).State)
}

func TestLoader_ConcurrentUse(t *testing.T) {
	src := &scriptedSource{results: []result{{companies: sample}}}

	l := loader.New(testConfig(0, 0), src, nil, nil)
	defer l.Close()
	l.Start(context.Background())

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			if i%4 == 0 {
				l.Refetch()
			}
			_ = l.Snapshot()
			_ = l.Companies()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = l.Wait(ctx)
		})
	}
	wg.Wait()

	require.Equal(t, loader.StateSuccess, waitSettled(t, l).State)
}

type sourceFunc func(ctx context.Context) ([]company.Company, error)

func (f sourceFunc) ListCompanies(ctx context.Context) ([]company.Company, error) {
	return f(ctx)
}

func TestLoader_RecordsLoadMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })
	metrics, err := telemetry.NewMetrics(mp, "company-directory")
	require.NoError(t, err)

	src := mocks.NewMockCompanySource(t)
	src.EXPECT().ListCompanies(mock.Anything).Return(sample, nil).Once()

	l := loader.New(testConfig(0, 0), src, metrics, nil)
	defer l.Close()
	l.Start(ctx)
	waitSettled(t, l)

	// Metrics are recorded just after the loader settles.
	var size, loads int64
	require.Eventually(t, func() bool {
		var rm metricdata.ResourceMetrics
		if err := reader.Collect(ctx, &rm); err != nil {
			return false
		}
		for _, sm := range rm.ScopeMetrics {
			for _, md := range sm.Metrics {
				switch data := md.Data.(type) {
				case metricdata.Gauge[int64]:
					if md.Name == "directory.collection.size" && len(data.DataPoints) == 1 {
						size = data.DataPoints[0].Value
					}
				case metricdata.Sum[int64]:
					if md.Name == "directory.load.total" && len(data.DataPoints) == 1 {
						loads = data.DataPoints[0].Value
					}
				}
			}
		}
		return size > 0 && loads > 0
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, int64(len(sample)), size)
	require.Equal(t, int64(1), loads)
}
