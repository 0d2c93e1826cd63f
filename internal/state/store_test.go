package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminaai/lumina/internal/api"
)

type fakeGateway struct {
	mu sync.Mutex

	listRes    api.Result[[]api.Generation]
	exploreRes api.Result[[]api.Generation]
	favRes     api.Result[string]
	pubRes     api.Result[string]
	delRes     api.Result[string]
	genRes     api.Result[api.Generation]

	// When non-nil the corresponding call blocks until the gate closes,
	// letting tests observe the optimistic state mid-flight.
	favGate  chan struct{}
	genGate  chan struct{}
	listGate chan struct{}

	favCalls  int
	pubCalls  int
	delCalls  int
	listCalls int
}

var _ Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) FetchGenerations(context.Context, string, int) api.Result[[]api.Generation] {
	f.mu.Lock()
	f.listCalls++
	res := f.listRes
	f.mu.Unlock()
	return res
}

func (f *fakeGateway) WatchGenerations(context.Context, string, int) <-chan api.Result[[]api.Generation] {
	ch := make(chan api.Result[[]api.Generation])
	go func() {
		defer close(ch)
		ch <- api.Pending[[]api.Generation]()
		if f.listGate != nil {
			<-f.listGate
		}
		f.mu.Lock()
		res := f.listRes
		f.mu.Unlock()
		ch <- res
	}()
	return ch
}

func (f *fakeGateway) WatchExplore(context.Context, string, int) <-chan api.Result[[]api.Generation] {
	ch := make(chan api.Result[[]api.Generation])
	go func() {
		defer close(ch)
		ch <- api.Pending[[]api.Generation]()
		f.mu.Lock()
		res := f.exploreRes
		f.mu.Unlock()
		ch <- res
	}()
	return ch
}

func (f *fakeGateway) ToggleFavorite(context.Context, int64) api.Result[string] {
	if f.favGate != nil {
		<-f.favGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favCalls++
	return f.favRes
}

func (f *fakeGateway) TogglePublic(context.Context, int64) api.Result[string] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pubCalls++
	return f.pubRes
}

func (f *fakeGateway) DeleteGeneration(context.Context, int64) api.Result[string] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delCalls++
	return f.delRes
}

func (f *fakeGateway) Generate(context.Context, api.GenerateRequest) api.Result[api.Generation] {
	if f.genGate != nil {
		<-f.genGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.genRes
}

func newStore(gw *fakeGateway) *Store {
	return New(gw, "music", 50, nil)
}

// seed loads the store with the given records through the normal fetch path.
func seed(t *testing.T, s *Store, gw *fakeGateway, records []api.Generation) {
	t.Helper()
	gw.mu.Lock()
	gw.listRes = api.Ok(records)
	gw.mu.Unlock()
	s.LoadGenerations(context.Background())
	require.Len(t, s.View().Generations, len(records))
}

func records(ids ...int64) []api.Generation {
	out := make([]api.Generation, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.Generation{ID: id, Title: "t", Status: api.StatusCompleted})
	}
	return out
}

func idSet(items []api.Generation) map[int64]bool {
	set := make(map[int64]bool, len(items))
	for _, g := range items {
		set[g.ID] = true
	}
	return set
}

func TestStore_LoadGenerationsTransitions(t *testing.T) {
	gw := &fakeGateway{listGate: make(chan struct{})}
	gw.listRes = api.Ok(records(1, 2, 3))
	s := newStore(gw)

	done := make(chan struct{})
	go func() {
		s.LoadGenerations(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return s.View().IsLoading
	}, time.Second, 5*time.Millisecond, "loading flag should be up while the fetch is in flight")

	close(gw.listGate)
	<-done

	view := s.View()
	assert.False(t, view.IsLoading)
	assert.Len(t, view.Generations, 3)
	assert.Empty(t, view.Err)
}

func TestStore_LoadGenerationsError(t *testing.T) {
	gw := &fakeGateway{listRes: api.Err[[]api.Generation]("server said no")}
	s := newStore(gw)

	s.LoadGenerations(context.Background())

	view := s.View()
	assert.False(t, view.IsLoading)
	assert.Equal(t, "server said no", view.Err)
	assert.Empty(t, view.Generations)
}

func TestStore_ExploreErrorStaysLocal(t *testing.T) {
	gw := &fakeGateway{exploreRes: api.Err[[]api.Generation]("feed down")}
	s := newStore(gw)

	s.LoadExplore(context.Background())

	view := s.View()
	assert.Empty(t, view.Err, "explore failures must not set the global error")
	assert.Empty(t, view.Explore)
}

func TestStore_LoadExploreSuccess(t *testing.T) {
	gw := &fakeGateway{exploreRes: api.Ok(records(11, 12))}
	s := newStore(gw)

	s.LoadExplore(context.Background())

	assert.Len(t, s.View().Explore, 2)
}

func TestStore_ToggleFavoriteOptimisticThenRevert(t *testing.T) {
	gw := &fakeGateway{
		favGate: make(chan struct{}),
		favRes:  api.Err[string]("simulated server error"),
	}
	s := newStore(gw)
	seed(t, s, gw, []api.Generation{{ID: 7, IsFavorite: false}})

	done := make(chan struct{})
	go func() {
		s.ToggleFavorite(context.Background(), 7)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return s.View().Generations[0].IsFavorite
	}, time.Second, 5*time.Millisecond, "flip must be visible before the call resolves")

	close(gw.favGate)
	<-done

	assert.False(t, s.View().Generations[0].IsFavorite, "failed toggle must revert")
	assert.Equal(t, 1, gw.favCalls)
}

func TestStore_ToggleFavoriteSuccessSticks(t *testing.T) {
	gw := &fakeGateway{favRes: api.Ok("ok")}
	s := newStore(gw)
	seed(t, s, gw, []api.Generation{{ID: 7}})

	s.ToggleFavorite(context.Background(), 7)

	assert.True(t, s.View().Generations[0].IsFavorite)
}

func TestStore_ToggleFavoriteUnknownIDIsNoop(t *testing.T) {
	gw := &fakeGateway{favRes: api.Ok("ok")}
	s := newStore(gw)
	seed(t, s, gw, records(1))

	s.ToggleFavorite(context.Background(), 999)

	assert.Zero(t, gw.favCalls, "unknown id must not reach the gateway")
}

func TestStore_TogglePublicRoundTripIsIdentityOnError(t *testing.T) {
	gw := &fakeGateway{pubRes: api.Err[string]("nope")}
	s := newStore(gw)
	seed(t, s, gw, []api.Generation{{ID: 4, IsPublic: true}})

	s.TogglePublic(context.Background(), 4)

	assert.True(t, s.View().Generations[0].IsPublic, "toggle+revert must equal identity")
	assert.Equal(t, 1, gw.pubCalls)
}

func TestStore_DeleteErrorRestoresIdentitySet(t *testing.T) {
	gw := &fakeGateway{delRes: api.Err[string]("cannot delete")}
	s := newStore(gw)
	seed(t, s, gw, records(1, 2, 3))
	before := idSet(s.View().Generations)

	s.Delete(context.Background(), 2)

	after := idSet(s.View().Generations)
	assert.Equal(t, before, after, "record must be restored, position aside")
	assert.Equal(t, 1, gw.delCalls)
}

func TestStore_DeleteSuccessRemoves(t *testing.T) {
	gw := &fakeGateway{delRes: api.Ok("deleted")}
	s := newStore(gw)
	seed(t, s, gw, records(1, 2, 3))

	s.Delete(context.Background(), 2)

	after := idSet(s.View().Generations)
	assert.False(t, after[2])
	assert.Len(t, after, 2)
}

func TestStore_GenerateFlagStrictlyBetween(t *testing.T) {
	gw := &fakeGateway{genGate: make(chan struct{})}
	gw.genRes = api.Ok(api.Generation{ID: 99, Title: "fresh"})
	s := newStore(gw)
	seed(t, s, gw, records(1))

	assert.False(t, s.View().IsGenerating, "false before invocation")

	done := make(chan struct{})
	go func() {
		s.Generate(context.Background(), api.GenerateRequest{Title: "t", Prompt: "p"})
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return s.View().IsGenerating
	}, time.Second, 5*time.Millisecond, "true while in flight")

	close(gw.genGate)
	<-done

	view := s.View()
	assert.False(t, view.IsGenerating, "false after resolution")
	require.NotEmpty(t, view.Generations)
	assert.Equal(t, int64(99), view.Generations[0].ID, "confirmed record prepended at head")
	assert.Len(t, view.Generations, 2)
}

func TestStore_GenerateErrorLeavesListUnchanged(t *testing.T) {
	gw := &fakeGateway{genRes: api.Err[api.Generation]("model overloaded")}
	s := newStore(gw)
	seed(t, s, gw, records(1, 2))

	s.Generate(context.Background(), api.GenerateRequest{Title: "t", Prompt: "p"})

	view := s.View()
	assert.False(t, view.IsGenerating)
	assert.Len(t, view.Generations, 2, "no optimistic record on failure")
	assert.Equal(t, "model overloaded", view.Err)
}

func TestStore_PlaybackTransitionsAreLocal(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(gw)
	seed(t, s, gw, records(5))

	s.Play(5)
	view := s.View()
	assert.Equal(t, int64(5), view.NowPlayingID)
	assert.True(t, view.IsPlaying)
	if rec, ok := view.NowPlaying(); assert.True(t, ok) {
		assert.Equal(t, int64(5), rec.ID)
	}

	s.TogglePlay()
	assert.False(t, s.View().IsPlaying)
	s.TogglePlay()
	assert.True(t, s.View().IsPlaying)

	s.StopPlaying()
	view = s.View()
	assert.Zero(t, view.NowPlayingID)
	assert.False(t, view.IsPlaying)
}

func TestStore_RefreshReplacesSilently(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(gw)
	seed(t, s, gw, []api.Generation{{ID: 1, Status: api.StatusPending}})

	assert.True(t, s.View().AnyInProgress())

	gw.mu.Lock()
	gw.listRes = api.Ok([]api.Generation{{ID: 1, Status: api.StatusCompleted}})
	gw.mu.Unlock()

	s.Refresh(context.Background())

	view := s.View()
	assert.Equal(t, api.StatusCompleted, view.Generations[0].Status)
	assert.False(t, view.IsLoading, "silent refresh never flips the loading flag")
	assert.False(t, view.AnyInProgress())
}

func TestStore_RefreshFailureKeepsData(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(gw)
	seed(t, s, gw, records(1, 2))

	gw.mu.Lock()
	gw.listRes = api.Err[[]api.Generation]("offline")
	gw.mu.Unlock()

	s.Refresh(context.Background())

	view := s.View()
	assert.Len(t, view.Generations, 2)
	assert.Empty(t, view.Err, "background refresh failures stay quiet")
}

func TestStore_ViewReturnsIndependentCopy(t *testing.T) {
	gw := &fakeGateway{favRes: api.Ok("ok")}
	s := newStore(gw)
	seed(t, s, gw, records(1, 2))

	view := s.View()
	view.Generations[0].Title = "mutated"

	assert.Equal(t, "t", s.View().Generations[0].Title, "caller copies must not reach stored state")
}

func TestStore_ChangesCoalesce(t *testing.T) {
	gw := &fakeGateway{}
	s := newStore(gw)

	s.Play(1)
	s.Play(2)

	select {
	case <-s.Changes():
	default:
		t.Fatal("a notification should be pending")
	}
	select {
	case <-s.Changes():
		t.Fatal("notifications must coalesce, not queue")
	default:
	}
}

func TestStore_ClearError(t *testing.T) {
	gw := &fakeGateway{genRes: api.Err[api.Generation]("bad")}
	s := newStore(gw)
	s.Generate(context.Background(), api.GenerateRequest{})
	require.NotEmpty(t, s.View().Err)

	s.ClearError()

	assert.Empty(t, s.View().Err)
}
