// Package config manages user-level settings stored at ~/.boxes/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// extra generator roots and the default log level.
package config
