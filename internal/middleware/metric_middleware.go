package middleware

import (
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func SetupPrometheus(r *gin.Engine) {
	p := ginprometheus.NewPrometheus("tsuika")

	p.Use(r)
}
