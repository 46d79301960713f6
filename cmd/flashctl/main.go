// flashctl inspects and edits firmware image files using the flashkit
// layout, verify, and engine packages.
package main

func main() {
	execute()
}
