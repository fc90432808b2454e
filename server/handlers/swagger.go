package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"safetyportal/docs"
)

// RegisterSwaggerRoutes регистрирует маршруты Swagger в Gin роутере.
// Host не задается, чтобы UI обращался к тому адресу, с которого открыт
func RegisterSwaggerRoutes(router *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
}
