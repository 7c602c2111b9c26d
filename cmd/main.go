package main

import (
	"github.com/sathaneem/aadhi-academy/internal/app"
	"github.com/sathaneem/aadhi-academy/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
