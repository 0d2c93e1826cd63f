package state

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/luminaai/lumina/internal/api"
)

// Gateway is the slice of the API client the store needs.
type Gateway interface {
	FetchGenerations(ctx context.Context, kind string, limit int) api.Result[[]api.Generation]
	WatchGenerations(ctx context.Context, kind string, limit int) <-chan api.Result[[]api.Generation]
	WatchExplore(ctx context.Context, kind string, limit int) <-chan api.Result[[]api.Generation]
	ToggleFavorite(ctx context.Context, id int64) api.Result[string]
	TogglePublic(ctx context.Context, id int64) api.Result[string]
	DeleteGeneration(ctx context.Context, id int64) api.Result[string]
	Generate(ctx context.Context, req api.GenerateRequest) api.Result[api.Generation]
}

var _ Gateway = (*api.Client)(nil)

// View is the UI-visible state. The store owns it exclusively; the UI
// reads copies and never mutates it directly.
type View struct {
	Generations  []api.Generation
	Explore      []api.Generation
	IsLoading    bool
	IsGenerating bool
	Err          string
	NowPlayingID int64 // zero means nothing selected
	IsPlaying    bool
}

// NowPlaying returns the selected record, searching the library first and
// the explore feed second.
func (v View) NowPlaying() (api.Generation, bool) {
	if v.NowPlayingID == 0 {
		return api.Generation{}, false
	}
	for _, g := range v.Generations {
		if g.ID == v.NowPlayingID {
			return g, true
		}
	}
	for _, g := range v.Explore {
		if g.ID == v.NowPlayingID {
			return g, true
		}
	}
	return api.Generation{}, false
}

// AnyInProgress reports whether the library holds a record the service is
// still working on. The poller uses it to decide whether to refresh.
func (v View) AnyInProgress() bool {
	for _, g := range v.Generations {
		if g.InProgress() {
			return true
		}
	}
	return false
}

// Store is the synchronized state container. Mutations apply an optimistic
// transform under the lock, call the gateway outside it, and reconcile the
// outcome under the lock again: commit on success, exact inverse on error.
//
// Mutation methods block until reconciliation and are meant to run on
// their own goroutines (bubbletea commands); the mutex serializes state
// access between them. Two concurrent mutations on the same record resolve
// last-write-wins; there is no per-record sequencing.
type Store struct {
	mu   sync.Mutex
	view View

	gw      Gateway
	kind    string
	limit   int
	log     *zap.Logger
	changes chan struct{}
}

// New creates a Store for records of the given type.
func New(gw Gateway, kind string, limit int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		gw:      gw,
		kind:    kind,
		limit:   limit,
		log:     logger,
		changes: make(chan struct{}, 1),
	}
}

// View returns a copy of the current view. Slices are cloned so the caller
// cannot reach into the stored state.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.view
	view.Generations = cloneGenerations(s.view.Generations)
	view.Explore = cloneGenerations(s.view.Explore)
	return view
}

// Changes returns a coalescing notification channel; a receive means the
// view may have changed since the last read.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// LoadGenerations runs a tri-state library fetch: loading, then either the
// replacement list or an error.
func (s *Store) LoadGenerations(ctx context.Context) {
	for res := range s.gw.WatchGenerations(ctx, s.kind, s.limit) {
		s.mu.Lock()
		switch {
		case res.Loading():
			s.view.IsLoading = true
			s.view.Err = ""
		case res.OK():
			s.view.IsLoading = false
			s.view.Generations = res.Value()
		default:
			s.view.IsLoading = false
			s.view.Err = res.Message()
		}
		s.mu.Unlock()
		s.notify()
	}
}

// LoadExplore fetches the public feed. Failures are logged, not surfaced;
// the feed is best effort and must not disturb the global error state.
func (s *Store) LoadExplore(ctx context.Context) {
	for res := range s.gw.WatchExplore(ctx, s.kind, s.limit) {
		if res.Failed() {
			s.log.Warn("explore fetch failed", zap.String("reason", res.Message()))
			continue
		}
		if !res.OK() {
			continue
		}
		s.mu.Lock()
		s.view.Explore = res.Value()
		s.mu.Unlock()
		s.notify()
	}
}

// Refresh silently replaces the library on success, without touching the
// loading or error flags. Used by the background poller while records are
// still pending.
func (s *Store) Refresh(ctx context.Context) {
	res := s.gw.FetchGenerations(ctx, s.kind, s.limit)
	if !res.OK() {
		if res.Failed() {
			s.log.Warn("background refresh failed", zap.String("reason", res.Message()))
		}
		return
	}
	s.mu.Lock()
	s.view.Generations = res.Value()
	s.mu.Unlock()
	s.notify()
}

// ToggleFavorite flips the favorite flag locally, confirms with the
// service, and flips back if the call fails. Unknown ids are a no-op.
func (s *Store) ToggleFavorite(ctx context.Context, id int64) {
	if !s.flip(id, flipFavorite) {
		return
	}
	if res := s.gw.ToggleFavorite(ctx, id); res.Failed() {
		s.log.Warn("favorite toggle rejected, reverting",
			zap.Int64("id", id), zap.String("reason", res.Message()))
		s.flip(id, flipFavorite)
	}
}

// TogglePublic flips the visibility flag with the same protocol.
func (s *Store) TogglePublic(ctx context.Context, id int64) {
	if !s.flip(id, flipPublic) {
		return
	}
	if res := s.gw.TogglePublic(ctx, id); res.Failed() {
		s.log.Warn("visibility toggle rejected, reverting",
			zap.Int64("id", id), zap.String("reason", res.Message()))
		s.flip(id, flipPublic)
	}
}

// Delete removes the record locally, retains a copy, and re-appends it if
// the service rejects the deletion. Restored records land at the tail;
// position is not preserved.
func (s *Store) Delete(ctx context.Context, id int64) {
	backup, ok := s.remove(id)
	if !ok {
		return
	}
	if res := s.gw.DeleteGeneration(ctx, id); res.Failed() {
		s.log.Warn("delete rejected, restoring record",
			zap.Int64("id", id), zap.String("reason", res.Message()))
		s.mu.Lock()
		s.view.Generations = append(s.view.Generations, backup)
		s.mu.Unlock()
		s.notify()
	}
}

// Generate submits a generation request. There is no optimistic record:
// the content is server-computed, so a generating flag stands in until
// the confirmed record arrives and is prepended.
func (s *Store) Generate(ctx context.Context, req api.GenerateRequest) {
	s.mu.Lock()
	s.view.IsGenerating = true
	s.view.Err = ""
	s.mu.Unlock()
	s.notify()

	res := s.gw.Generate(ctx, req)

	s.mu.Lock()
	s.view.IsGenerating = false
	if res.OK() {
		s.view.Generations = append([]api.Generation{res.Value()}, s.view.Generations...)
	} else {
		s.view.Err = res.Message()
	}
	s.mu.Unlock()
	s.notify()
}

// Play selects a record for playback. Pure local transition.
func (s *Store) Play(id int64) {
	s.mu.Lock()
	s.view.NowPlayingID = id
	s.view.IsPlaying = true
	s.mu.Unlock()
	s.notify()
}

// TogglePlay flips the playing flag.
func (s *Store) TogglePlay() {
	s.mu.Lock()
	s.view.IsPlaying = !s.view.IsPlaying
	s.mu.Unlock()
	s.notify()
}

// StopPlaying clears the selection and the playing flag.
func (s *Store) StopPlaying() {
	s.mu.Lock()
	s.view.NowPlayingID = 0
	s.view.IsPlaying = false
	s.mu.Unlock()
	s.notify()
}

// ClearError drops the user-visible error.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.view.Err = ""
	s.mu.Unlock()
	s.notify()
}

// flip applies fn to the record with the given id and reports whether it
// was found. It is its own inverse, which is what makes the revert exact.
func (s *Store) flip(id int64, fn func(*api.Generation)) bool {
	s.mu.Lock()
	found := false
	for i := range s.view.Generations {
		if s.view.Generations[i].ID == id {
			fn(&s.view.Generations[i])
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.notify()
	}
	return found
}

func (s *Store) remove(id int64) (api.Generation, bool) {
	s.mu.Lock()
	var backup api.Generation
	found := false
	kept := s.view.Generations[:0]
	for _, g := range s.view.Generations {
		if g.ID == id && !found {
			backup = g
			found = true
			continue
		}
		kept = append(kept, g)
	}
	s.view.Generations = kept
	s.mu.Unlock()
	if found {
		s.notify()
	}
	return backup, found
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func flipFavorite(g *api.Generation) { g.IsFavorite = !g.IsFavorite }
func flipPublic(g *api.Generation)   { g.IsPublic = !g.IsPublic }

func cloneGenerations(items []api.Generation) []api.Generation {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Generation, len(items))
	copy(dup, items)
	return dup
}
