package config

import "runtime"

// mapEnvKey translates variable names that differ between platforms.
func mapEnvKey(key string) string {
	if runtime.GOOS == "windows" && key == "HOSTNAME" {
		return "COMPUTERNAME"
	}
	return key
}
