package timekeeper

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"focusflow/internal/core/model"
)

// Alert texts.
const (
	TitleBreakStart = "Time to take a break!"
	TitleBreakOver  = "Break time is over!"
	BodyBreakOver   = "Time to focus again."

	bodyBreakStartFormat = "Great job! You've completed %d sessions."
)

const defaultMaxCatchUp = 60 * 60

// SettingsStore loads and persists timer settings.
//
//go:generate mockgen -source=timekeeper.go -destination=mock_timekeeper_test.go -package=timekeeper
type SettingsStore interface {
	Load() model.Settings
	Save(settings model.Settings) error
}

// Notifier delivers alerts. Notify must not block.
type Notifier interface {
	Notify(alert model.Alert)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	TickSource   TickSource
	Now          func() time.Time
	// MaxCatchUp bounds how many missed ticks one late tick may replay.
	MaxCatchUp int
	Logger     *slog.Logger
}

// TimeKeeper is the work/break cycle state machine.
type TimeKeeper struct {
	mu       sync.Mutex
	saveMu   sync.Mutex
	options  Config
	store    SettingsStore
	notifier Notifier
	settings model.Settings
	state    model.TimerState
	events   []chan Event

	generation uint64
	release    func()
	closed     bool
}

// New creates a TimeKeeper, loading settings from store once.
func New(store SettingsStore, notifier Notifier, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.TickSource == nil {
		options.TickSource = RealtimeTicks()
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.MaxCatchUp <= 0 {
		options.MaxCatchUp = defaultMaxCatchUp
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	settings := model.DefaultSettings()
	if store != nil {
		settings = store.Load()
	}
	settings = settings.Normalize()

	return &TimeKeeper{
		options:  options,
		store:    store,
		notifier: notifier,
		settings: settings,
		state:    model.InitialState(settings),
	}
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Snapshot returns a copy of the current timer state.
func (keeper *TimeKeeper) Snapshot() model.TimerState {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Settings returns the active settings.
func (keeper *TimeKeeper) Settings() model.Settings {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.settings
}

// Start resumes the countdown. It is a no-op when nothing is left to count.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.startLocked()
}

// Pause freezes the countdown. Idempotent.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.pauseLocked()
}

// Toggle starts a paused countdown or pauses a running one.
func (keeper *TimeKeeper) Toggle() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state.IsRunning {
		keeper.pauseLocked()
		return
	}
	keeper.startLocked()
}

// Reset refills the current mode and pauses. Completed sessions are kept.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.switchModeLocked(keeper.state.Mode)
	keeper.emitLocked(EventStateChange)
}

// SwitchMode enters mode with a full, paused countdown.
// Switching to the current mode acts as a reset.
func (keeper *TimeKeeper) SwitchMode(mode model.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("switch mode %q: %w", mode, model.ErrUnknownMode)
	}
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.switchModeLocked(mode)
	keeper.emitLocked(EventStateChange)
	return nil
}

// Tick advances a running countdown by one second and handles completion.
func (keeper *TimeKeeper) Tick() {
	keeper.tick(0, false, true)
}

// UpdateSettings applies and persists new settings, returning the normalized
// values. A remaining time longer than the new duration is clamped to it.
func (keeper *TimeKeeper) UpdateSettings(settings model.Settings) model.Settings {
	applied := keeper.applySettings(settings)
	keeper.persist()
	return applied
}

// ReloadSettings re-reads settings from the store without persisting them again.
func (keeper *TimeKeeper) ReloadSettings() model.Settings {
	if keeper.store == nil {
		return keeper.Settings()
	}
	return keeper.applySettings(keeper.store.Load())
}

// Close stops ticking and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.setRunningLocked(false)
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) startLocked() {
	if keeper.closed || keeper.state.IsRunning || keeper.state.SecondsRemaining <= 0 {
		return
	}
	keeper.setRunningLocked(true)
	keeper.emitLocked(EventStateChange)
}

func (keeper *TimeKeeper) pauseLocked() {
	if !keeper.state.IsRunning {
		return
	}
	keeper.setRunningLocked(false)
	keeper.emitLocked(EventStateChange)
}

func (keeper *TimeKeeper) applySettings(settings model.Settings) model.Settings {
	settings = settings.Normalize()

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.settings = settings
	if limit := settings.Seconds(keeper.state.Mode); keeper.state.SecondsRemaining > limit {
		keeper.state.SecondsRemaining = limit
	}
	keeper.emitLocked(EventSettingsChange)
	return settings
}

func (keeper *TimeKeeper) persist() {
	if keeper.store == nil {
		return
	}
	keeper.saveMu.Lock()
	defer keeper.saveMu.Unlock()

	settings := keeper.Settings()
	if err := keeper.store.Save(settings); err != nil {
		keeper.options.Logger.Error("save settings", "error", err)
	}
}

// tick advances the countdown when running. With checkGeneration set, ticks
// from a released tick source are dropped. emitProgress is false for all but
// the last tick of a catch-up burst.
func (keeper *TimeKeeper) tick(generation uint64, checkGeneration, emitProgress bool) bool {
	keeper.mu.Lock()
	if !keeper.state.IsRunning || (checkGeneration && generation != keeper.generation) {
		keeper.mu.Unlock()
		return false
	}

	if keeper.state.SecondsRemaining > 0 {
		keeper.state.SecondsRemaining--
	}
	if keeper.state.SecondsRemaining > 0 {
		if emitProgress {
			keeper.emitLocked(EventProgress)
		}
		keeper.mu.Unlock()
		return true
	}

	alert, send := keeper.completeLocked()
	keeper.mu.Unlock()

	if send {
		keeper.dispatch(alert)
	}
	return true
}

func (keeper *TimeKeeper) completeLocked() (model.Alert, bool) {
	var alert model.Alert
	if keeper.state.Mode == model.ModeWork {
		keeper.state.SessionsCompleted++
		sessions := keeper.state.SessionsCompleted
		target := model.ModeShortBreak
		if keeper.settings.LongBreakDue(sessions) {
			target = model.ModeLongBreak
		}
		keeper.emitLocked(EventSessionComplete)
		keeper.options.Logger.Debug("work session complete", "sessions", sessions, "next", target)

		alert = model.Alert{Title: TitleBreakStart, Body: fmt.Sprintf(bodyBreakStartFormat, sessions)}
		keeper.switchModeLocked(target)
	} else {
		keeper.options.Logger.Debug("break complete", "mode", keeper.state.Mode)
		alert = model.Alert{Title: TitleBreakOver, Body: BodyBreakOver}
		keeper.switchModeLocked(model.ModeWork)
	}
	keeper.emitLocked(EventStateChange)

	if !keeper.settings.AlertsEnabled() {
		return model.Alert{}, false
	}
	alert.Desktop = keeper.settings.NotificationsEnabled
	alert.Sound = keeper.settings.SoundEnabled
	return alert, true
}

func (keeper *TimeKeeper) dispatch(alert model.Alert) {
	if keeper.notifier == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			keeper.options.Logger.Error("notifier panicked", "title", alert.Title, "panic", recovered)
		}
	}()
	keeper.notifier.Notify(alert)
}

func (keeper *TimeKeeper) switchModeLocked(mode model.Mode) {
	keeper.setRunningLocked(false)
	keeper.state.Mode = mode
	keeper.state.SecondsRemaining = keeper.settings.Seconds(mode)
}

// setRunningLocked acquires the tick source on the paused->running edge and
// releases it on the running->paused edge.
func (keeper *TimeKeeper) setRunningLocked(running bool) {
	if keeper.state.IsRunning == running {
		return
	}
	keeper.state.IsRunning = running
	if !running {
		if keeper.release != nil {
			keeper.release()
			keeper.release = nil
		}
		return
	}

	keeper.generation++
	ticks, stop := keeper.options.TickSource.Acquire(keeper.options.TickInterval)
	done := make(chan struct{})
	keeper.release = func() {
		stop()
		close(done)
	}
	go keeper.run(ticks, done, keeper.generation, keeper.options.Now())
}

func (keeper *TimeKeeper) run(ticks <-chan time.Time, done <-chan struct{}, generation uint64, last time.Time) {
	interval := keeper.options.TickInterval
	for {
		select {
		case <-done:
			return
		case tickTime := <-ticks:
			count := elapsedTicks(tickTime.Sub(last), interval, keeper.options.MaxCatchUp)
			if count == keeper.options.MaxCatchUp {
				last = tickTime
			} else {
				last = last.Add(time.Duration(count) * interval)
			}
			for i := 0; i < count; i++ {
				if !keeper.tick(generation, true, i == count-1) {
					return
				}
			}
		}
	}
}

func (keeper *TimeKeeper) emitLocked(eventType EventType) {
	event := Event{
		Type:     eventType,
		State:    keeper.state,
		Settings: keeper.settings,
		Progress: keeper.state.Progress(keeper.settings),
		At:       keeper.options.Now(),
	}
	for _, ch := range keeper.events {
		select {
		case ch <- event:
			continue
		default:
		}
		if eventType == EventProgress {
			continue
		}
		// Full buffer: evict the oldest event so transitions are never lost.
		// Sends only happen under mu, so one receive always frees a slot.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}
