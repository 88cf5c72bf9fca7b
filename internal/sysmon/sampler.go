// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sysmon samples process resource usage for the status bar.
package sysmon

import (
	"fmt"
	"runtime"
)

// Sample is one point-in-time resource snapshot of this process.
type Sample struct {
	HeapAllocBytes uint64
	SysBytes       uint64
	NumGoroutine   int
	NumGC          uint32
}

// Take captures a snapshot. Cheap enough to run on every UI tick.
func Take() Sample {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return Sample{
		HeapAllocBytes: ms.HeapAlloc,
		SysBytes:       ms.Sys,
		NumGoroutine:   runtime.NumGoroutine(),
		NumGC:          ms.NumGC,
	}
}

// Format renders the snapshot for the status bar, e.g. "mem 42MB | go 12".
func (s Sample) Format() string {
	return fmt.Sprintf("mem %s | go %d", FormatBytes(s.HeapAllocBytes), s.NumGoroutine)
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n uint64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)
	switch {
	case n >= gib:
		return fmt.Sprintf("%.1fGB", float64(n)/float64(gib))
	case n >= mib:
		return fmt.Sprintf("%dMB", n/mib)
	case n >= kib:
		return fmt.Sprintf("%dKB", n/kib)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
