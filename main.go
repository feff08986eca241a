// Command filelink resolves relative file paths in content frontmatter to
// File records.
package main

import "github.com/papapumpkin/filelink/cmd"

func main() {
	cmd.Execute()
}
