// Command storykeeper manages a fiction writer's custom dictionary.
package main

import "github.com/petar-djukic/storykeeper/internal/cli"

func main() {
	cli.Execute()
}
