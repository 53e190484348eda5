//go:build !linux && !darwin

package sysinfo

func uname() (string, string, error) {
	return SysUnknown.Release, SysUnknown.Version, nil
}
