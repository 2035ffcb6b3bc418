package main

import (
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/app"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("application failed", "error", err.Error())
	}
}
