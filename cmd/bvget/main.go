// Package main is the entry point for the bvget command.
package main

func main() {
	Execute()
}
