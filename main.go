package main

import (
	"github.com/Pratik-jagdale/AgentDashBackend/cmd"
)

func main() {
	cmd.Execute()
}
