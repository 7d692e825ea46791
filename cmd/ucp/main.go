// Command ucp runs Unified Content Language programs against a
// document and exposes validation, snapshot, and description
// utilities over it.
package main

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithCode(err)
	}
}
