package main

import "github.com/theirongolddev/gagyebu/cmd"

func main() {
	cmd.Execute()
}
