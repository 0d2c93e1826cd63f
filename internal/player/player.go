// Package player defines the playback collaborator the UI drives. The
// sync core never touches it; playback selection is pure local state.
package player

// Controller accepts a playable URL and exposes transport controls. The
// real implementation is platform-specific and lives outside this module.
type Controller interface {
	Prepare(url string) error
	Play()
	Pause()
	Stop()
}

// Noop is the default Controller when no playback backend is wired.
type Noop struct{}

var _ Controller = Noop{}

// Prepare implements Controller.
func (Noop) Prepare(string) error { return nil }

// Play implements Controller.
func (Noop) Play() {}

// Pause implements Controller.
func (Noop) Pause() {}

// Stop implements Controller.
func (Noop) Stop() {}
