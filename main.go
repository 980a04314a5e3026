package main

import (
	"sente/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Best-effort: a local .env can set SENTE_CONFIG or SENTE_NO_HISTORY.
	_ = godotenv.Load()

	cmd.Execute()
}
