package main

import (
	"fmt"
	"os"
	"time"

	"tactics-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	j, err := storage.LoadFile(os.Args[2])
	if err != nil {
		fmt.Printf("Cannot read journal: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "info":
		fmt.Printf("match    %s\n", j.MatchID)
		fmt.Printf("seed     %d\n", j.Seed)
		fmt.Printf("saved    %s\n", time.Unix(j.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("actions  %d\n", len(j.Actions))
		if n := len(j.Actions); n > 0 {
			fmt.Printf("rounds   %d\n", j.Actions[n-1].Round)
		}
	case "actions":
		for i, a := range j.Actions {
			fmt.Printf("%4d  round %-3d unit %-4d %-14s %s\n", i, a.Round, a.Unit, a.Action, a.Payload)
		}
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Journal Utility - inspect .tcjl match journals
Commands:
  info <file>     - match id, seed, save time and action count
  actions <file>  - every journaled command in order`)
}
