// Command ordersctl lists, inspects and updates orders from a terminal.
package main

import (
	"github.com/joho/godotenv"

	"pehlione.com/admin/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
