// Package user resolves who is running hue when the config names no one
package user

import (
	"os"
	"os/user"
	"strings"
)

// Default returns the caller identity used when config sets no user: $USER
// first, then the OS account name. It is empty when neither is known, so
// membership checks fail instead of matching a made-up name.
func Default() string {
	if name := Normalize(os.Getenv("USER")); name != "" {
		return name
	}
	if current, err := user.Current(); err == nil {
		return Normalize(current.Username)
	}
	return ""
}

// Normalize trims whitespace and drops a Windows domain prefix
// ("CORP\ada" becomes "ada")
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
