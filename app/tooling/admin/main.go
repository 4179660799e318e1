// This program provides admin tooling for inspecting a running node.
package main

import "github.com/seqlabs/starknode/app/tooling/admin/commands"

func main() {
	commands.Execute()
}
