// Command vocabctl is the operator CLI: dictionary lookups, browsing the
// vocabulary store, bulk imports and schema migrations.
//
// Exit codes: 0 = success, 1 = error.
package main

func main() {
	Execute()
}
