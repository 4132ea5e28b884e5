// Command captionthis captions videos and images stored in a vision API library.
package main

import "github.com/diogo/captionthis/internal/commands"

func main() {
	commands.Execute()
}
