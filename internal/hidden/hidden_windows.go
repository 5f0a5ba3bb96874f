//go:build windows

package hidden

import (
	"golang.org/x/sys/windows"
)

// attrProber implements the Windows convention: the hidden file attribute.
type attrProber struct{}

func platformProber() Prober {
	return attrProber{}
}

func (attrProber) IsHidden(path string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}

func (attrProber) Reveal(path string) (string, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return path, err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return path, err
	}
	if attrs&windows.FILE_ATTRIBUTE_HIDDEN == 0 {
		return path, nil
	}
	if err := windows.SetFileAttributes(p, attrs&^uint32(windows.FILE_ATTRIBUTE_HIDDEN)); err != nil {
		return path, err
	}
	return path, nil
}
