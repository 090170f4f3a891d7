// Package ui provides the terminal user interface for bookgrid.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds the view state of a single
// mount and renders it with Lipgloss. The fetch is requested once, from
// Init, through the Source interface; every later message only re-renders.
//
// # Package Structure
//
//   - app.go: Model, Update/View, the mount command, and Run
//   - grid.go: responsive card grid and row offsets for scrolling
//   - card.go: single card rendering and OSC 8 hyperlinks
//   - layout.go: width thresholds and card sizing
//   - keys.go: key bindings
//   - help.go: help overlay
//   - theme.go: color palettes and derived styles
//
// # Phases
//
//   - Loading: centered spinner with a caption
//   - Error: centered static message; the underlying error goes to the log only
//   - Ready: heading, card grid in a viewport, footer with count and hints
//
// # Grid
//
// The grid shows one column below 80 cells, two below 120 and three
// otherwise. Cards keep the input order, row-major, and cards in the same
// row are padded to the same height.
//
// # Key Bindings
//
//   - h/j/k/l or arrows: move selection
//   - g/G: first/last book
//   - ctrl+u/ctrl+d: half page up/down
//   - c: copy the selected book's purchase link
//   - T: cycle theme (persisted to prefs)
//   - ?: help
//   - q or ctrl+c: quit
//
// # Usage Example
//
//	mount := app.NewMount(client, logger)
//	defer mount.Unmount()
//	err := ui.Run(ui.Options{
//		Context:   ctx,
//		Source:    mount,
//		ThemeName: userPrefs.Theme,
//		PrefsPath: prefsPath,
//		Logger:    logger,
//	})
package ui
