package review

import (
	"os"
	"path"
	"time"

	devicons "github.com/epilande/go-devicons"
)

type iconFileInfo struct {
	name string
}

func (i iconFileInfo) Name() string       { return i.name }
func (i iconFileInfo) Size() int64        { return 0 }
func (i iconFileInfo) Mode() os.FileMode  { return 0 }
func (i iconFileInfo) ModTime() time.Time { return time.Time{} }
func (i iconFileInfo) IsDir() bool        { return false }
func (i iconFileInfo) Sys() any           { return nil }

// fileIcon returns the Nerd Font icon for a scanned path.
func fileIcon(p string) string {
	if p == "" {
		return ""
	}
	return devicons.IconForInfo(iconFileInfo{name: path.Base(p)}).Icon
}

func iconWithSpace(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}
