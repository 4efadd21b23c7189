//go:build !test

package utils

import "github.com/sqweek/dialog"

func AskForFile(title, startingDir string) (string, error) {
	builder := dialog.File().SetStartDir(startingDir).Title(title).Filter("Scene", "lua", "gxt", "7z", "zip", "gz")

	// show the dialog
	return builder.Load()
}
