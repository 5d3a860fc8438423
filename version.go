package main

import (
	"runtime/debug"
	"strings"
)

var version = "dev"

var readBuildInfo = debug.ReadBuildInfo

func currentVersion() string {
	if v := strings.TrimSpace(version); v != "" && v != "dev" {
		return v
	}
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return "dev"
	}
	switch mv := strings.TrimSpace(info.Main.Version); mv {
	case "", "(devel)":
		return "dev"
	default:
		return mv
	}
}
