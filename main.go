package main

import "github.com/zlang-app/zlang/cmd"

func main() {
	cmd.Execute()
}
