package main

import "github.com/MeKo-Tech/screentime/cmd/screentime/cmd"

func main() {
	cmd.Execute()
}
