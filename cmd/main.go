package main

import (
	"github.com/fooddash/marketplace/internal/app"
	"github.com/fooddash/marketplace/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
