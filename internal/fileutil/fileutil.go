// Package fileutil provides shared file permission constants.
package fileutil

import "os"

const (
	// OwnerOnly restricts a file to the owning user.
	OwnerOnly os.FileMode = 0o600

	// ReadableByAll allows anyone to read a generated file.
	ReadableByAll os.FileMode = 0o644

	// DirDefault is the permission used for created directories.
	DirDefault os.FileMode = 0o755
)
