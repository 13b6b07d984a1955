//go:build unit

package outbox_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gear-ledger/internal/infra/outbox"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/pkg/config"
	"gear-ledger/internal/usecase/shared"
	"gear-ledger/tests/common/builder"
	"gear-ledger/tests/common/memstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var t0 = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

type recordingSender struct {
	mu   sync.Mutex
	fail error
	sent []outbox.BatchMessage
}

func (s *recordingSender) Send(_ context.Context, _ shared.NotificationJob, msg outbox.BatchMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func notification(assignees ...uuid.UUID) shared.BatchNotification {
	serial := "SN-1"
	return shared.BatchNotification{
		Action:    "CHECK_OUT",
		ActorID:   uuid.New(),
		Assignees: assignees,
		Assets: []shared.NotifiedAsset{
			{ID: uuid.New(), Name: "Sony A7 IV", SerialNumber: &serial, TransactionID: uuid.New()},
		},
		OccurredAt: t0,
	}
}

func TestPublisher_NotifyBatch(t *testing.T) {
	t.Run("担当者とクライアント連絡先に宛てたジョブを積む", func(t *testing.T) {
		store := memstore.New()
		alice := builder.NewUserBuilder().WithEmail("alice@example.com").MustBuildDomain()
		bob := builder.NewUserBuilder().WithEmail("bob@example.com").MustBuildDomain()
		store.PutUser(alice)
		store.PutUser(bob)
		contact := "desk@client.example"
		clientID := uuid.New()
		store.PutClient(shared.ClientSnapshot{ID: clientID, Name: "Acme", ContactEmail: &contact})

		n := notification(alice.ID(), bob.ID())
		n.ClientID = &clientID

		pub := outbox.NewPublisher(store, clock.NewMockClock(t0))
		require.NoError(t, pub.NotifyBatch(context.Background(), n))

		jobs := store.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, outbox.KindEmail, jobs[0].Kind)
		assert.Equal(t, outbox.TopicTransactionBatch, jobs[0].Topic)
		assert.Equal(t, shared.JobStatusQueued, jobs[0].Status)

		msg, err := outbox.Decode(jobs[0].Payload)
		require.NoError(t, err)
		want := []string{"alice@example.com", "bob@example.com", "desk@client.example"}
		if diff := cmp.Diff(want, msg.Recipients); diff != "" {
			t.Errorf("recipients mismatch (-want +got):\n%s", diff)
		}
		require.Len(t, msg.Assets, 1)
		assert.Equal(t, "Sony A7 IV", msg.Assets[0].Name)
	})

	t.Run("非アクティブな担当者と存在しないユーザーは宛先から外す", func(t *testing.T) {
		store := memstore.New()
		gone := builder.NewUserBuilder().WithEmail("gone@example.com").AsInactive().MustBuildDomain()
		store.PutUser(gone)

		pub := outbox.NewPublisher(store, clock.NewMockClock(t0))
		require.NoError(t, pub.NotifyBatch(context.Background(), notification(gone.ID(), uuid.New())))

		assert.Empty(t, store.Jobs())
	})

	t.Run("ジョブ作成に失敗したらエラーを返す", func(t *testing.T) {
		store := memstore.New()
		u := builder.NewUserBuilder().MustBuildDomain()
		store.PutUser(u)
		store.Fail(memstore.OpJobCreate, func(uuid.UUID) error { return errors.New("disk full") })

		pub := outbox.NewPublisher(store, clock.NewMockClock(t0))
		err := pub.NotifyBatch(context.Background(), notification(u.ID()))

		assert.Error(t, err)
		assert.Empty(t, store.Jobs())
	})
}

func queueJob(t *testing.T, store *memstore.Store, clk clock.Clock) {
	t.Helper()
	u := builder.NewUserBuilder().WithID(uuid.New()).MustBuildDomain()
	store.PutUser(u)
	require.NoError(t, outbox.NewPublisher(store, clk).NotifyBatch(context.Background(), notification(u.ID())))
}

func TestRelay_RunOnce(t *testing.T) {
	cfg := config.OutboxConfig{PollInterval: time.Minute, BatchSize: 10, MaxAttempts: 3}

	t.Run("配信できたジョブはsentになる", func(t *testing.T) {
		store := memstore.New()
		clk := clock.NewMockClock(t0)
		queueJob(t, store, clk)
		sender := &recordingSender{}

		n, err := outbox.NewRelay(store, sender, clk, cfg).RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, sender.count())
		jobs := store.Jobs()
		assert.Equal(t, shared.JobStatusSent, jobs[0].Status)
		assert.Equal(t, 1, jobs[0].Attempts)
	})

	t.Run("失敗したジョブは再スケジュールされ上限でfailedになる", func(t *testing.T) {
		store := memstore.New()
		clk := clock.NewMockClock(t0)
		queueJob(t, store, clk)
		sender := &recordingSender{fail: errors.New("smtp unavailable")}
		relay := outbox.NewRelay(store, sender, clk, cfg)

		_, err := relay.RunOnce(context.Background())
		require.NoError(t, err)
		job := store.Jobs()[0]
		assert.Equal(t, shared.JobStatusQueued, job.Status)
		assert.Equal(t, 1, job.Attempts)
		assert.Equal(t, t0.Add(time.Minute), job.RunAt)
		assert.Equal(t, "smtp unavailable", store.JobError(job.ID))

		// not due yet
		n, err := relay.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)

		clk.Add(time.Minute)
		_, err = relay.RunOnce(context.Background())
		require.NoError(t, err)
		job = store.Jobs()[0]
		assert.Equal(t, 2, job.Attempts)
		assert.Equal(t, clk.Now().Add(2*time.Minute), job.RunAt)

		clk.Add(2 * time.Minute)
		_, err = relay.RunOnce(context.Background())
		require.NoError(t, err)
		job = store.Jobs()[0]
		assert.Equal(t, shared.JobStatusFailed, job.Status)
		assert.Equal(t, 3, job.Attempts)
	})
}

// leaseCheckingSender records, at send time, whether a unit of work was open
// and the run_at other pollers would see for the job.
type leaseCheckingSender struct {
	store     *memstore.Store
	inUnit    bool
	visibleAt time.Time
	calls     int
}

func (s *leaseCheckingSender) Send(_ context.Context, job shared.NotificationJob, _ outbox.BatchMessage) error {
	s.calls++
	s.inUnit = s.store.InUnit()
	if s.inUnit {
		return nil
	}
	for _, j := range s.store.Jobs() {
		if j.ID == job.ID {
			s.visibleAt = j.RunAt
		}
	}
	return nil
}

func TestRelay_DeliversOutsideUnitOfWork(t *testing.T) {
	cfg := config.OutboxConfig{PollInterval: time.Minute, BatchSize: 10, MaxAttempts: 3, LeaseTimeout: 5 * time.Minute}

	t.Run("success: 送信はトランザクション外でリース済みの状態で行う", func(t *testing.T) {
		store := memstore.New()
		clk := clock.NewMockClock(t0)
		queueJob(t, store, clk)
		before := store.Commits()
		sender := &leaseCheckingSender{store: store}

		n, err := outbox.NewRelay(store, sender, clk, cfg).RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, sender.calls)
		assert.False(t, sender.inUnit)
		assert.Equal(t, t0.Add(5*time.Minute), sender.visibleAt)
		assert.Equal(t, 2, store.Commits()-before, "lease and outcome commit separately")
		assert.Equal(t, shared.JobStatusSent, store.Jobs()[0].Status)
	})

	t.Run("error: 結果の記録に失敗してもリース切れまで再送しない", func(t *testing.T) {
		store := memstore.New()
		clk := clock.NewMockClock(t0)
		queueJob(t, store, clk)
		sender := &recordingSender{}
		relay := outbox.NewRelay(store, sender, clk, cfg)
		store.Fail(memstore.OpJobMark, func(uuid.UUID) error { return errors.New("connection reset") })

		n, err := relay.RunOnce(context.Background())

		require.Error(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, sender.count())
		job := store.Jobs()[0]
		assert.Equal(t, shared.JobStatusQueued, job.Status)
		assert.Equal(t, t0.Add(5*time.Minute), job.RunAt)

		store.Fail(memstore.OpJobMark, nil)
		n, err = relay.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, 1, sender.count())

		clk.Add(5 * time.Minute)
		n, err = relay.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 2, sender.count())
		assert.Equal(t, shared.JobStatusSent, store.Jobs()[0].Status)
	})
}

func TestRelay_StartStop(t *testing.T) {
	store := memstore.New()
	clk := clock.NewMockClock(t0)
	queueJob(t, store, clk)
	sender := &recordingSender{}

	relay := outbox.NewRelay(store, sender, clk, config.OutboxConfig{PollInterval: 10 * time.Millisecond, BatchSize: 5, MaxAttempts: 3})
	relay.Start()
	relay.Start()

	assert.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, relay.Stop(ctx))
	require.NoError(t, relay.Stop(ctx))
}

func TestRetryDelay(t *testing.T) {
	base := time.Minute
	assert.Equal(t, time.Minute, outbox.RetryDelay(base, 0))
	assert.Equal(t, time.Minute, outbox.RetryDelay(base, 1))
	assert.Equal(t, 2*time.Minute, outbox.RetryDelay(base, 2))
	assert.Equal(t, 8*time.Minute, outbox.RetryDelay(base, 4))
	assert.Equal(t, time.Hour, outbox.RetryDelay(base, 30))
}
