// Package sysinfo describes the host the assistant runs commands on.
package sysinfo

import (
	"os"
	"runtime"
)

// Environment is the host description consumed by the system prompt.
type Environment interface {
	OSName() string
	Shell() string
	HomeDir() string
}

// Local reads the environment of the current process.
type Local struct{}

var osNames = map[string]string{
	"darwin":  "macOS",
	"linux":   "Linux",
	"windows": "Windows",
	"freebsd": "FreeBSD",
	"openbsd": "OpenBSD",
}

func (Local) OSName() string {
	if name, ok := osNames[runtime.GOOS]; ok {
		return name
	}
	return runtime.GOOS
}

func (Local) Shell() string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("ComSpec"); comspec != "" {
			return comspec
		}
		return `C:\Windows\System32\cmd.exe`
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

func (Local) HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// Static is a fixed Environment, used by tests and by hosts that report
// their own values.
type Static struct {
	OS   string `json:"os"`
	Sh   string `json:"shell"`
	Home string `json:"home"`
}

func (s Static) OSName() string  { return s.OS }
func (s Static) Shell() string   { return s.Sh }
func (s Static) HomeDir() string { return s.Home }
