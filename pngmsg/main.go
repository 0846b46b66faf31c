package main

import "pngmsg-tools/go/pngmsg/cmd"

func main() {
	cmd.Execute()
}
