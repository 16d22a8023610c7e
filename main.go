// Package main is the entry point for the duelrank CLI tool, which replays a
// head-to-head match log into Elo-style standings and head-to-head records.
package main

import "github.com/pable/go-duelrank/cmd"

func main() {
	cmd.Execute()
}
