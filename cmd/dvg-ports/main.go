// Command dvg-ports lists serial ports where an adapter might live.
package main

import (
	"fmt"
	"os"

	"go.bug.st/serial"
)

func main() {
	ports, err := serial.GetPortsList()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return
	}
	for _, p := range ports {
		fmt.Println(p)
	}
}
