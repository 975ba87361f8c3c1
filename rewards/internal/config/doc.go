// Package config loads and watches the reward factor configuration file
// (rewardfactor.yaml).
//
// Top-level types:
//   - Config: rating_type, filter_category, year, inputs, official, impact,
//     output, log
//   - InputsConfig: measures: path to the dataset file (YAML or JSON)
//   - OfficialConfig: compare flag plus the improvement/new measure scenario
//   - ImpactConfig: removed_codes for what-if analysis
//   - OutputConfig: format (console|json|prometheus) and optional path
//   - LogConfig: level (debug|info|warn|error) and format (json|text)
//
// Load(path) reads the YAML file, applies defaults (part_c, year 2026,
// console output, info/json logging), resolves the inputs path relative to
// the config file, then validates enums and required fields.
//
// Watch(ctx, path, onChange) uses fsnotify to detect changes to the config
// file and to the dataset it references, and calls onChange with the newly
// parsed Config.
package config
