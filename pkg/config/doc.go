// Package config manages TaskGate configuration.
//
// Configuration is layered: built-in defaults, then the taskgate.yml config
// file, then TASKGATE_* environment variables. Each attribute remembers which
// layer supplied its value so "taskgatectl config show" can report it.
package config
