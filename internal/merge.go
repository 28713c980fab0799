// merge.go
// Config merging logic for smartdebug
package internal

// mergeConfigs merges a slice of Configs, from least to most specific.
func mergeConfigs(configs []*Config) *Config {
	if len(configs) == 0 {
		return &Config{}
	}
	merged := configs[0]
	for i := 1; i < len(configs); i++ {
		mergeConfigsPair(merged, configs[i])
	}
	return merged
}

// mergeConfigsPair merges two Config objects: add takes precedence over base.
//
// 1. Settings fields are overwritten by add when set.
// 2. Probe and group states are merged by name, add winning on collision.
func mergeConfigsPair(base *Config, add *Config) {
	if add.Settings != nil {
		if base.Settings == nil {
			base.Settings = add.Settings
		} else {
			if add.Settings.Debug != nil {
				base.Settings.Debug = add.Settings.Debug
			}
			if add.Settings.SelfDebug != nil {
				base.Settings.SelfDebug = add.Settings.SelfDebug
			}
			if add.Settings.LogLevel != "" {
				base.Settings.LogLevel = add.Settings.LogLevel
			}
		}
	}

	// Merge probe states: replace by name
	probeMap := map[string]int{}
	for i, p := range base.Probes {
		probeMap[p.Name] = i
	}
	for _, p := range add.Probes {
		if i, ok := probeMap[p.Name]; ok {
			base.Probes[i] = p
		} else {
			base.Probes = append(base.Probes, p)
		}
		probeMap[p.Name] = len(base.Probes) - 1
	}

	// Merge group states: replace by name
	groupMap := map[string]int{}
	for i, g := range base.Groups {
		groupMap[g.Name] = i
	}
	for _, g := range add.Groups {
		if i, ok := groupMap[g.Name]; ok {
			base.Groups[i] = g
		} else {
			base.Groups = append(base.Groups, g)
		}
		groupMap[g.Name] = len(base.Groups) - 1
	}
}
