// Command regctl reads and edits registry keys on the native Windows
// registry or on a regkit key store.
package main

func main() {
	execute()
}
