package main

import "github.com/dtalent/hr-client/cmd"

func main() {
	cmd.Execute()
}
