package debug

import (
	"os"
	"strconv"
)

type debug struct {
	IDs    bool
	Binary bool
	Decode bool
	Wrap   bool
}

var d *debug

func init() {
	d = &debug{}
	d.IDs = boolEnv("PLIST_DEBUG_IDS")
	d.Binary = boolEnv("PLIST_DEBUG_BINARY")
	d.Decode = boolEnv("PLIST_DEBUG_DECODE")
	d.Wrap = boolEnv("PLIST_DEBUG_WRAP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// IDs reports whether identity assignment is traced.
func IDs() bool {
	return d.IDs
}
func Binary() bool {
	return d.Binary
}
func Decode() bool {
	return d.Decode
}
func Wrap() bool {
	return d.Wrap
}
