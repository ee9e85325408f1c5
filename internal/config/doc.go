// Package config provides congram's configuration.
//
// Settings are resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Command Line Flags      │  ← Highest priority (applied by cmd/congram)
//	├─────────────────────────────┤
//	│  2. Environment Variables   │  ← CONGRAM_*
//	├─────────────────────────────┤
//	│  1. Config File             │  ← ~/.config/congram/config.toml
//	├─────────────────────────────┤
//	│  0. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sections
//
//   - canvas: default size and background color
//   - render: escape output options and strict checking
//   - heatmap: default scheme, cell height, frame and legend
//   - log: level and timestamps
//   - watch: debounce delay for the watch command
//
// # Usage
//
//	cfg, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	opts, err := cfg.HeatmapOptions()
//
// A missing file yields the defaults. Unknown keys, malformed values and
// failed validation are reported as *ParseError or *ValidationError.
package config
