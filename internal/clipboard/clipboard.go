package clipboard

import "github.com/atotto/clipboard"

// System is the OS clipboard collaborator for copied selections.
type System struct{}

func (System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
