package main

import (
	"context"
	"errors"
)

func main() {
	app := mustBootstrapMarketAPI()
	defer app.Close()

	if err := app.Run(); err != nil && !errors.Is(err, context.Canceled) {
		panic(err)
	}
}
