// types.go
// Core HCL struct definitions for smartdebug
package internal

const (
	// ConfigFileName is the name of the configuration file
	// that seeds the smartdebug diagnostic context.
	ConfigFileName = "smartdebug.hcl"
)

// Config represents the top-level bootstrap configuration for smartdebug.
type Config struct {
	Settings *Settings    `hcl:"smartdebug,block"`
	Probes   []ProbeState `hcl:"probe,block"`
	Groups   []GroupState `hcl:"group,block"`
}

// Settings represents process-wide switches: the global debug flag seed,
// smartdebug's own internal debug output, and the internal log level.
type Settings struct {
	Debug     *bool  `hcl:"debug,optional"`
	SelfDebug *bool  `hcl:"self_debug,optional"`
	LogLevel  string `hcl:"log_level,optional"` // "silent", "error", "warn", "info", "debug"
}

// ProbeState declares the initial debug state for a registered key,
// overriding whatever initial state the registration call supplies.
type ProbeState struct {
	Name    string `hcl:"name,label"`
	Enabled *bool  `hcl:"enabled,optional"`
}

// GroupState declares the initial state of a named profiler group.
type GroupState struct {
	Name    string `hcl:"name,label"`
	Enabled *bool  `hcl:"enabled,optional"`
}

// GlobalDebug reports the configured global debug flag seed, if any.
func (c *Config) GlobalDebug() (bool, bool) {
	if c.Settings == nil || c.Settings.Debug == nil {
		return false, false
	}
	return *c.Settings.Debug, true
}

// ProbeDefault reports the configured initial state for a probe key, if any.
func (c *Config) ProbeDefault(key string) (bool, bool) {
	for _, p := range c.Probes {
		if p.Name == key {
			if p.Enabled == nil {
				return false, false
			}
			return *p.Enabled, true
		}
	}
	return false, false
}

// GroupStates returns the configured profiler group states keyed by name.
func (c *Config) GroupStates() map[string]bool {
	states := make(map[string]bool)
	for _, g := range c.Groups {
		if g.Enabled == nil {
			states[g.Name] = true
			continue
		}
		states[g.Name] = *g.Enabled
	}
	return states
}
