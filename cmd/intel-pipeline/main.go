package main

import (
	"os"

	"horse.fit/intel-pipeline/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
