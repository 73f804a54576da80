// Package config manages user-level settings stored at ~/.capkit/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// custom source roots and the default module selection.
package config
