// QuietPawn - a chess engine with a terminal front-end.
package main

import (
	"log"

	"github.com/quietpawn/quietpawn/internal/storage"
	"github.com/quietpawn/quietpawn/internal/tui"
)

func main() {
	st, err := storage.Open()
	if err != nil {
		log.Printf("storage unavailable: %v (saving disabled)", err)
		st = nil
	} else {
		defer st.Close()
	}

	if err := tui.Run(st); err != nil {
		log.Fatal(err)
	}
}
