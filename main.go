package main

import "github.com/cmmoran/objc2hx/cmd"

func main() {
	cmd.Execute()
}
