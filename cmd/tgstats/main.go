package main

import (
	"telegram-chat-stats/internal/cli"
)

// Информация о версии (задается через ldflags)
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	cli.SetVersion(Version, Commit, Date)
	cli.Execute()
}
