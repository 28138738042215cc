package tools

import (
	"fmt"
	"sort"
	"sync"

	"github.com/acerge/velocity-tools/pkg/tools/config"
)

// Lifecycle scopes a tool can be registered for. A request-scoped tool
// is created fresh for every rendering pass, a session-scoped one per
// user session, and an application-scoped one once for the whole host.
const (
	ScopeRequest     = "request"
	ScopeSession     = "session"
	ScopeApplication = "application"
)

// LoopToolKey is the key templates use to reach a LoopTool.
const LoopToolKey = "loop"

// ValidScope reports whether the given string names a known scope.
func ValidScope(scope string) bool {
	switch scope {
	case ScopeRequest, ScopeSession, ScopeApplication:
		return true
	}
	return false
}

// ToolInfo describes one registrable tool: the key templates find it
// under, the scope its instances live in, and the factory that makes a
// fresh instance.
type ToolInfo struct {
	Key   string
	Scope string
	New   func() interface{}
}

// Toolbox is one scope's worth of instantiated tools, keyed the way
// templates address them. Application-scoped toolboxes also carry the
// configured data values.
type Toolbox struct {
	scope string
	tools map[string]interface{}
}

// Scope returns the scope this toolbox was created for.
func (tb *Toolbox) Scope() string {
	return tb.scope
}

// Get returns the tool or data value under the given key.
func (tb *Toolbox) Get(key string) (interface{}, bool) {
	tool, ok := tb.tools[key]
	return tool, ok
}

// Keys returns the sorted keys available in this toolbox.
func (tb *Toolbox) Keys() []string {
	keys := make([]string, 0, len(tb.tools))
	for key := range tb.tools {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Size returns the number of entries in this toolbox.
func (tb *Toolbox) Size() int {
	return len(tb.tools)
}

// toolEntry is one configured activation of a registered tool, possibly
// under a different key.
type toolEntry struct {
	key  string
	info ToolInfo
}

// ToolboxFactory turns registered tools and configuration into
// per-scope toolboxes. The built-in tools are registered on creation,
// so an unconfigured factory already produces a working request
// toolbox. Registration and creation are safe for concurrent use.
type ToolboxFactory struct {
	mu       sync.RWMutex
	registry map[string]ToolInfo
	active   map[string][]toolEntry
	data     map[string]interface{}
	settings *Settings
	logger   *Logger
}

// FactoryOption adjusts a ToolboxFactory at creation time.
type FactoryOption func(*ToolboxFactory)

// WithSettings makes the factory use the given settings instead of the
// global ones.
func WithSettings(settings *Settings) FactoryOption {
	return func(f *ToolboxFactory) {
		if settings != nil {
			f.settings = settings
		}
	}
}

// WithLogger makes the factory log through the given logger.
func WithLogger(logger *Logger) FactoryOption {
	return func(f *ToolboxFactory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithData seeds the factory's application data.
func WithData(data map[string]interface{}) FactoryOption {
	return func(f *ToolboxFactory) {
		for key, value := range data {
			f.data[key] = value
		}
	}
}

// NewToolboxFactory creates a factory with the built-in tools
// registered.
func NewToolboxFactory(opts ...FactoryOption) *ToolboxFactory {
	f := &ToolboxFactory{
		registry: make(map[string]ToolInfo),
		data:     make(map[string]interface{}),
		settings: GetGlobalSettings(),
		logger:   GetLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	registerBuiltinTools(f)
	return f
}

// registerBuiltinTools registers the tools this library ships with.
func registerBuiltinTools(f *ToolboxFactory) {
	f.RegisterTool(ToolInfo{
		Key:   LoopToolKey,
		Scope: ScopeRequest,
		New:   func() interface{} { return NewLoopTool() },
	})
}

// RegisterTool adds a tool to the set this factory can put in
// toolboxes.
func (f *ToolboxFactory) RegisterTool(info ToolInfo) error {
	if info.Key == "" {
		return NewValidationError("key", "tool key cannot be empty")
	}
	if !ValidScope(info.Scope) {
		return NewValidationError("scope", fmt.Sprintf("tool '%s' has unknown scope '%s'", info.Key, info.Scope))
	}
	if info.New == nil {
		return NewValidationError("factory", fmt.Sprintf("tool '%s' has no factory", info.Key))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.registry[info.Key] = info
	return nil
}

// HasTool reports whether a tool is registered under the given key.
func (f *ToolboxFactory) HasTool(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.registry[key]
	return ok
}

// ToolKeys returns the sorted keys of every registered tool.
func (f *ToolboxFactory) ToolKeys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.registry))
	for key := range f.registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SetData sets one application data value by key.
func (f *ToolboxFactory) SetData(key string, value interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Data returns a copy of the application data values.
func (f *ToolboxFactory) Data() map[string]interface{} {
	f.mu.RLock()
	defer f.mu.RUnlock()
	data := make(map[string]interface{}, len(f.data))
	for key, value := range f.data {
		data[key] = value
	}
	return data
}

// Configure applies a loaded configuration: data entries are converted
// and stored as application data, and each toolbox block selects which
// registered tools the matching scope exposes, optionally under
// overridden keys. Unknown tool names fail in strict mode and are
// skipped with a warning otherwise. A configured factory creates
// toolboxes only from its configuration; an unconfigured one falls back
// to everything registered.
func (f *ToolboxFactory) Configure(cfg *config.FactoryConfig) error {
	if cfg == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return WithContext(err, "configure toolbox factory", nil)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, d := range cfg.Data {
		value, err := d.Convert()
		if err != nil {
			return WithContext(err, "configure toolbox factory", map[string]interface{}{"data": d.Key})
		}
		f.data[d.Key] = value
	}

	active := make(map[string][]toolEntry)
	for _, tb := range cfg.Toolboxes {
		scope := tb.Scope
		if scope == "" {
			scope = f.settings.DefaultScope
		}
		if !ValidScope(scope) {
			return NewValidationError("scope", fmt.Sprintf("unknown toolbox scope '%s'", tb.Scope))
		}

		for _, tc := range tb.Tools {
			info, ok := f.registry[tc.Tool]
			if !ok {
				if f.settings.StrictMode {
					return NewValidationError("tool", fmt.Sprintf("unknown tool '%s' in %s toolbox", tc.Tool, scope))
				}
				f.logger.Warn("skipping unknown tool '%s' in %s toolbox", tc.Tool, scope)
				continue
			}
			if info.Scope != scope {
				return NewValidationError("tool", fmt.Sprintf("tool '%s' is only valid in %s scope, not %s", tc.Tool, info.Scope, scope))
			}

			key := tc.Key
			if key == "" {
				key = info.Key
			}
			active[scope] = append(active[scope], toolEntry{key: key, info: info})
		}
	}
	f.active = active

	f.logger.Debug("toolbox factory configured with %d toolboxes and %d data entries", len(cfg.Toolboxes), len(cfg.Data))
	return nil
}

// CreateToolbox instantiates the tools of one scope. Every call makes
// fresh tool instances, so request toolboxes never share loop state
// between rendering passes.
func (f *ToolboxFactory) CreateToolbox(scope string) (*Toolbox, error) {
	if !ValidScope(scope) {
		return nil, NewValidationError("scope", fmt.Sprintf("unknown scope '%s'", scope))
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	tools := make(map[string]interface{})
	if scope == ScopeApplication {
		for key, value := range f.data {
			tools[key] = value
		}
	}

	for _, entry := range f.entriesFor(scope) {
		tools[entry.key] = entry.info.New()
	}

	return &Toolbox{scope: scope, tools: tools}, nil
}

// entriesFor returns the activations for a scope: the configured ones
// when Configure has run, otherwise every registered tool of that
// scope under its own key. Callers must hold at least a read lock.
func (f *ToolboxFactory) entriesFor(scope string) []toolEntry {
	if f.active != nil {
		return f.active[scope]
	}

	keys := make([]string, 0, len(f.registry))
	for key := range f.registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var entries []toolEntry
	for _, key := range keys {
		info := f.registry[key]
		if info.Scope == scope {
			entries = append(entries, toolEntry{key: info.Key, info: info})
		}
	}
	return entries
}
