// Package app is the composition root of bookgrid.
//
// # Overview
//
// Each command loads the TOML config, opens the zap log file and builds the
// books client, then binds that client to a Mount. A Mount owns one
// state.Store and issues exactly one fetch; every surface renders from the
// store and none of them can trigger a second fetch.
//
// # Components
//
//   - mount.go: Mount, the one-fetch lifetime of a view
//   - app.go: shared setup and Run, the terminal UI
//   - render.go: Render, one-shot HTML, Markdown or glamour terminal output
//   - serve.go: Serve, the HTTP surface with graceful shutdown
//   - fetch.go: Fetch, validated items as JSON or a go-spew dump
//   - logs.go: Logs, the formatted tail of the log file
//
// # Data Flow
//
//	┌──────────────┐
//	│  setup()     │ config.Load, logging.New, books.NewClient
//	└──────┬───────┘
//	       │
//	       ├─────> NewMount(client)   one store, one fetch
//	       ├─────> mount.Start(ctx)   fetch in background
//	       └─────> surface            ui.Run / page.HTML / server.New
//
// # Error Handling
//
// Setup failures (bad config, unwritable log dir, invalid endpoint) are
// returned from the command. A failed fetch is not: it settles the store in
// the error phase, is written to the log, and the surface shows its static
// error message. Fetch is the exception and returns the cause, since its
// output is for diagnosing the endpoint.
package app
