// Package monitor implements the thermonitor terminal dashboard.
//
// The dashboard shows a grid of sensor cards with animated temperature and
// humidity gauges, a timeline view for one sensor, and a help screen.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View), but the
// state it draws lives in a session.Session shared with the poller:
//
//   - Model: queues keystrokes, owns the tick, caches the last frame
//   - Update: on each tick, takes the session lock if it is free, feeds the
//     queued keys to the mode machine, steps the gauges, and re-renders
//   - View: returns the cached frame
//
// When the poller holds the lock the tick is skipped: keys stay queued and
// the previous frame stays on screen.
//
// # Message Flow
//
//  1. tea.KeyMsg is appended to the key queue (ctrl+c quits at once)
//  2. tickMsg fires every ui.tick (default 50ms)
//  3. queued keys go through Session.HandleKey; the Outcome decides whether
//     to quit, trigger a poll, or start a detail fetch
//  4. a detail fetch runs as a tea.Cmd without the lock and comes back as a
//     detailLoadedMsg, which is applied on the next tick that gets the lock
//
// # Keyboard Shortcuts
//
// Keys are routed by the mode package. The footer lists the bindings of the
// active mode and the help screen lists every mode's bindings.
package monitor
