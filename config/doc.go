// Package config provides YAML-backed configuration for the mailmesh
// façade: delivery loop tuning and logging setup. Configuration is
// validated with struct tags on load. The routing core itself takes no
// configuration from files or the environment; only the wiring layer
// consumes this package.
package config
