package main

import (
	"os"

	"github.com/AshwinChaudhary21/InterviewChatbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
