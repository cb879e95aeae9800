// Package menu implements the interactive line-mode front end.
//
// The menu is an explicit state machine. Each state reads at most one line
// of input and returns the next state:
//
//	AwaitingURL ──url──▶ Analyzing ──ok──▶ AwaitingChoice ──1,2──▶ Downloading
//	     ▲  │change/quit        │error           │3,4                  │
//	     │  ▼                   ▼                ▼                     │
//	     │ ConfiguringFolder / Exit      ChoosingQuality ──────────────┤
//	     └───────────────────────────────────────────────────────────◀─┘
//
// All I/O goes through the io.Reader and io.Writer given in Config, so the
// whole loop can be driven from tests.
package menu
