package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/tabby/internal/logging"
	plua "github.com/dshills/tabby/internal/plugin/lua"
)

// StatusSuccess is the status text of a command whose function returned
// neither a string nor a number.
const StatusSuccess = "Success"

// Config configures a Host.
type Config struct {
	// Version is exposed to scripts as tabby.version.
	Version string
	// Mailbox receives every message plugins post. Required.
	Mailbox *Mailbox
	// Logger receives host and plugin log lines. Defaults to logging.NullLogger.
	Logger *logging.Logger
	// Watch reports edits to loaded plugin files through the mailbox.
	Watch bool
}

// Host manages the loaded plugins.
type Host struct {
	mu sync.RWMutex

	plugins []*Plugin
	nextID  int
	state   HostState

	version string
	mailbox *Mailbox
	logger  *logging.Logger

	watch   bool
	watcher *Watcher
}

// NewHost creates a running host with no plugins.
func NewHost(cfg Config) *Host {
	if cfg.Mailbox == nil {
		cfg.Mailbox = NewMailbox()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NullLogger
	}
	return &Host{
		nextID:  1,
		state:   HostRunning,
		version: cfg.Version,
		mailbox: cfg.Mailbox,
		logger:  cfg.Logger.WithComponent("plugin"),
		watch:   cfg.Watch,
	}
}

// Mailbox returns the mailbox plugins post to.
func (h *Host) Mailbox() *Mailbox {
	return h.mailbox
}

// State returns the health of the host.
func (h *Host) State() HostState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// SetDisabled disables or re-enables loading.
func (h *Host) SetDisabled(disabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if disabled {
		h.state = HostDisabled
	} else {
		h.state = HostRunning
	}
}

// markPanicked records an interpreter panic. Caller holds no lock.
func (h *Host) markPanicked(err error) {
	var pe *plua.PanicError
	if !errors.As(err, &pe) {
		return
	}
	h.mu.Lock()
	h.state = HostPanicked
	h.mu.Unlock()
	h.logger.Error("interpreter panic: %v", pe.Value)
}

// Load reads and runs the plugin at path.
//
// The plugin is added only if its chunk runs without error; messages it
// posted while running are delivered at that point. An error from init is
// logged and posted as a PluginError message but does not fail the load.
func (h *Host) Load(path string) (*Plugin, error) {
	if h.State() == HostDisabled {
		return nil, ErrHostDisabled
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plugin: %w", err)
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.mu.Unlock()

	log := h.logger.WithField("plugin", id)
	state, err := plua.NewState(plua.WithPrint(func(s string) {
		log.Info("print: %s", s)
	}))
	if err != nil {
		return nil, err
	}

	p := &Plugin{ID: id, Path: path, state: state}
	p.bufferMessages()
	h.installAPI(p)

	if err := state.DoChunk(filepath.Base(path), string(src)); err != nil {
		_ = state.Close()
		h.markPanicked(err)
		return nil, &ScriptError{Plugin: path, Op: "load", Err: err}
	}
	p.readMetadata()

	h.mu.Lock()
	h.plugins = append(h.plugins, p)
	h.mu.Unlock()

	p.deliverTo(h.mailbox)
	log.Info("loaded %s from %s", p.Name, path)

	h.callInit(p)
	h.watchFile(p)

	return p, nil
}

// callInit runs the optional init function of p.
func (h *Host) callInit(p *Plugin) {
	_, err := p.state.CallGlobal("init")
	if errors.Is(err, plua.ErrNotFunction) {
		return
	}
	if err != nil {
		h.markPanicked(err)
		serr := &ScriptError{Plugin: p.Name, Op: "init", Err: err}
		h.logger.WithField("plugin", p.ID).Plugin("%v", serr)
		h.mailbox.Post(Message{Kind: PluginError, PluginID: p.ID, Err: serr, Text: serr.Error()})
	}
}

// watchFile starts watching p's file if watching is enabled.
func (h *Host) watchFile(p *Plugin) {
	if !h.watch {
		return
	}

	h.mu.Lock()
	if h.watcher == nil {
		w, err := NewWatcher(h.mailbox, h.logger)
		if err != nil {
			h.watch = false
			h.mu.Unlock()
			h.logger.Warn("plugin file watching disabled: %v", err)
			return
		}
		h.watcher = w
	}
	w := h.watcher
	h.mu.Unlock()

	if err := w.Add(p.Path, p.ID); err != nil {
		h.logger.Warn("cannot watch %s: %v", p.Path, err)
	}
}

// LoadAll loads every path in order and returns the errors of the ones
// that failed. Failures do not stop later loads.
func (h *Host) LoadAll(paths []string) []error {
	var errs []error
	for _, path := range paths {
		if _, err := h.Load(path); err != nil {
			h.logger.Warn("autoload %s: %v", path, err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return errs
}

// Get returns the plugin with the given id.
func (h *Host) Get(id int) (*Plugin, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	i := h.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return h.plugins[i], true
}

// FindByName returns the first plugin whose name is exactly name.
func (h *Host) FindByName(name string) (*Plugin, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.plugins {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Plugins returns the loaded plugins in load order.
func (h *Host) Plugins() []*Plugin {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]*Plugin(nil), h.plugins...)
}

// Len returns the number of loaded plugins.
func (h *Host) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.plugins)
}

func (h *Host) indexOf(id int) int {
	for i, p := range h.plugins {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Unload closes and removes the plugin with the given id.
// Commands it registered stay in the registry and fail on their next call.
func (h *Host) Unload(id int) error {
	h.mu.Lock()
	i := h.indexOf(id)
	if i < 0 {
		h.mu.Unlock()
		return fmt.Errorf("%w: id %d", ErrPluginNotFound, id)
	}
	p := h.plugins[i]
	h.plugins = append(h.plugins[:i], h.plugins[i+1:]...)
	w := h.watcher
	h.mu.Unlock()

	h.release(p, w)
	return nil
}

// UnloadByName unloads the first plugin named name.
func (h *Host) UnloadByName(name string) error {
	p, ok := h.FindByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrPluginNotFound, name)
	}
	return h.Unload(p.ID)
}

func (h *Host) release(p *Plugin, w *Watcher) {
	if w != nil {
		_ = w.Remove(p.Path, p.ID)
	}
	_ = p.state.Close()
	h.logger.WithField("plugin", p.ID).Info("unloaded %s", p.Name)
}

// Invoke calls the function ref points at with args as a 1-based sequence.
//
// A string or number return value becomes the returned status text;
// anything else yields StatusSuccess. Errors raised by the script come back
// as *ScriptError. A ref whose plugin is gone yields ErrPluginNotFound.
func (h *Host) Invoke(ref FuncRef, args []string) (string, error) {
	h.mu.RLock()
	i := h.indexOf(ref.PluginID)
	var p *Plugin
	if i >= 0 {
		p = h.plugins[i]
	}
	h.mu.RUnlock()

	if p == nil {
		return "", ErrPluginNotFound
	}
	if ref.Slot < 0 || ref.Slot >= len(p.slots) {
		return "", ErrFunctionNotFound
	}

	bridge := plua.NewBridge(p.state.LuaState())
	ret, err := p.state.Call(p.slots[ref.Slot], bridge.StringSliceToTable(args))
	if err != nil {
		h.markPanicked(err)
		return "", &ScriptError{Plugin: p.Name, Op: "call", Err: err}
	}

	if len(ret) > 0 {
		if s, ok := plua.StatusText(ret[0]); ok {
			return s, nil
		}
	}
	return StatusSuccess, nil
}

// Close unloads every plugin and stops the file watcher.
func (h *Host) Close() error {
	h.mu.Lock()
	plugins := h.plugins
	h.plugins = nil
	w := h.watcher
	h.watcher = nil
	h.mu.Unlock()

	for _, p := range plugins {
		_ = p.state.Close()
	}
	if w != nil {
		return w.Close()
	}
	return nil
}
