// Command yt-player-ctl inspects and edits the player's history, favorites
// and saved session without starting the GUI.
package main

import (
	"fmt"
	"os"
)

func main() {
	a := newApp(os.Stdout, os.Stdin)
	if err := a.execute(newRootCmd(a)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
