package main

import (
	"log"

	"github.com/flameline/ecs-core/internal/core"
)

func main() {
	game, err := core.NewGame()
	if err != nil {
		log.Fatal(err)
	}
	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
