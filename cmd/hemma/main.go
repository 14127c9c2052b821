package main

import "hemma/cmd/hemma/root"

func main() {
	root.Execute()
}
