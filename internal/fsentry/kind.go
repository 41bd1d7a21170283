// Package fsentry classifies filesystem entries and decides which of them a
// walk should ignore.
//
// Classification never follows symbolic links for entries discovered during
// a walk. Only the user-supplied root is resolved through a link, because it
// has already been accepted by the caller.
package fsentry

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Kind is the type of a filesystem entry as reported by its metadata.
type Kind int

const (
	Other Kind = iota
	Directory
	RegularFile
	Symlink
	BlockDevice
	CharDevice
	Fifo
	Socket
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case RegularFile:
		return "file"
	case Symlink:
		return "symlink"
	case BlockDevice:
		return "block device"
	case CharDevice:
		return "char device"
	case Fifo:
		return "fifo"
	case Socket:
		return "socket"
	default:
		return "other"
	}
}

// Special reports whether entries of this kind are never expanded or reported.
func (k Kind) Special() bool {
	switch k {
	case Symlink, BlockDevice, CharDevice, Fifo, Socket:
		return true
	}
	return false
}

// KindOf maps file mode type bits to a Kind.
// ModeCharDevice is only meaningful together with ModeDevice.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return Symlink
	case mode.IsDir():
		return Directory
	case mode&fs.ModeNamedPipe != 0:
		return Fifo
	case mode&fs.ModeSocket != 0:
		return Socket
	case mode&fs.ModeDevice != 0:
		if mode&fs.ModeCharDevice != 0 {
			return CharDevice
		}
		return BlockDevice
	case mode.IsRegular():
		return RegularFile
	}
	return Other
}

// Entry is one filesystem object encountered during a walk.
type Entry struct {
	Path string // path as built from the walk root, not cleaned
	Name string // base name
	Kind Kind
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == Directory
}

// IsHidden reports whether a base name is a dotfile name.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// JoinPath appends name to dir without cleaning dir, so a root given as "."
// yields "./name" the way the user typed it.
func JoinPath(dir, name string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}
