package main

import "asset-janitor/cmd"

func main() {
	cmd.Execute()
}
