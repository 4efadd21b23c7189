package fyne

import "fyne.io/fyne/v2"

type itemOpt func(*fyne.MenuItem)

// toggled keeps the check mark of an item in step with the pipeline state
// it mirrors; set is called after every tap.
func toggled(checked bool, set func()) itemOpt {
	return func(item *fyne.MenuItem) {
		item.Checked = checked
		action := item.Action
		item.Action = func() {
			action()
			item.Checked = !item.Checked
			set()
		}
	}
}

// enabledIf disables the item unless ok.
func enabledIf(ok bool) itemOpt {
	return func(item *fyne.MenuItem) {
		item.Disabled = !ok
	}
}

// selected marks the frame skip item matching the current setting.
func selected(ok bool) itemOpt {
	return func(item *fyne.MenuItem) {
		item.Checked = ok
	}
}

func menuItem(label string, fn func(), opts ...itemOpt) *fyne.MenuItem {
	m := fyne.NewMenuItem(label, fn)
	for _, o := range opts {
		o(m)
	}
	return m
}
