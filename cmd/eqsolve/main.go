// Command eqsolve is the command-line front end of the equation engine.
package main

func main() {
	Execute()
}
