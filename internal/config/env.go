package config

import "strings"

// EnvPrefix is the prefix for environment overrides, e.g. FILELINK_ROOT_DIR.
const EnvPrefix = "FILELINK"

// envKeyReplacer maps nested keys such as store.driver to STORE_DRIVER.
var envKeyReplacer = strings.NewReplacer(".", "_")

// EnvKeyReplacer returns the replacer viper should use for env lookups.
func EnvKeyReplacer() *strings.Replacer {
	return envKeyReplacer
}
