// Package config resolves the artifact tree root for an invocation and
// manages the persisted CLI configuration file (~/.wayfind/config.yaml).
// Resolution order for the root: explicit --root flag, WAYFIND_ROOT
// environment variable, the persisted "root" config key, then the current
// working directory.
package config
