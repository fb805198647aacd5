package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/termio/pkg/decode"
	"github.com/dshills/termio/pkg/key"
	"github.com/dshills/termio/pkg/term"
)

// NewKeysCommand creates the keys command
func NewKeysCommand() *cobra.Command {
	var timeoutMs int

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Inspect decoded key events",
		Long: `Put the terminal in raw mode and print one line per decoded key
event: the wire token the binding registry matches on, the human label,
and the exact bytes the terminal sent. The screen is not cleared, so
the log scrolls like normal output.

Useful for checking what escape sequences a terminal emits and for
picking key specs for profile bindings. Unrecognized sequences show up
as UNKNOWN_<hex> tokens.

Press Ctrl+C to exit.

Examples:
  termio keys
  termio keys --timeout 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drv, err := term.NewInline()
			if err != nil {
				return err
			}
			if err := drv.Init(); err != nil {
				return err
			}
			defer func() { _ = drv.Cleanup() }()

			dec := decode.NewDecoder(drv)
			if timeoutMs > 0 {
				dec.SetTimeout(time.Duration(timeoutMs) * time.Millisecond)
			}

			_, _ = fmt.Fprintf(drv, "Press keys to inspect them. Ctrl+C exits.\r\n\r\n")
			_, _ = fmt.Fprintf(drv, "%-28s %-22s %s\r\n", "TOKEN", "LABEL", "BYTES")
			_ = drv.Flush()

			for {
				if !drv.WaitInput(250 * time.Millisecond) {
					continue
				}
				ev, ok := dec.Poll()
				if !ok {
					continue
				}

				_, _ = fmt.Fprintf(drv, "%-28s %-22s % x\r\n", ev.Token(), ev.Label(), ev.Raw)
				_ = drv.Flush()

				if ev.Key == key.KeyC && ev.Mods == key.ModCtrl {
					return nil
				}
			}
		},
	}

	cmd.Flags().IntVar(&timeoutMs, "timeout", 0, "Escape sequence timeout in milliseconds (default 100)")

	return cmd
}
