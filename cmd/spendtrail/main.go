package main

import "github.com/spendtrail/spendtrail_app/internal/cli"

func main() {
	cli.Execute()
}
