package system

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// ErrNoPicker is returned when no graphical dialog can be shown.
var ErrNoPicker = errors.New("folder picker unavailable")

// FolderPicker asks the user for a directory.
//
// ok is false when the user cancelled. err is set only when the dialog could
// not be shown at all.
type FolderPicker interface {
	PickFolder(title string) (path string, ok bool, err error)
}

// DialogPicker shows the platform's native folder dialog through zenity.
type DialogPicker struct {
	// Start is the directory the dialog opens in, if not empty.
	Start string
}

// PickFolder opens the dialog and blocks until the user closes it.
func (d DialogPicker) PickFolder(title string) (string, bool, error) {
	opts := []zenity.Option{
		zenity.Title(title),
		zenity.Directory(),
	}
	if d.Start != "" {
		opts = append(opts, zenity.Filename(d.Start))
	}

	path, err := zenity.SelectFile(opts...)
	switch {
	case errors.Is(err, zenity.ErrCanceled):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("%w: %v", ErrNoPicker, err)
	case path == "":
		return "", false, nil
	}

	return path, true, nil
}
