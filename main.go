// Command calm runs guided breathing, reflection and listing sessions in
// the terminal.
package main

import "github.com/xvierd/calm-cli/cmd"

func main() {
	cmd.Execute()
}
