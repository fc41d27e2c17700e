// The main package for the wikihop executable.
package main

import "github.com/JakeFAU/wikihop/cmd"

func main() {
	cmd.Execute()
}
