package app

import (
	"exam_ai_backend/docs"
	"exam_ai_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 试题生成
		api.POST("/aigenerate", c.generation.Generate)
		api.POST("/aigenerate/resume", c.generation.Resume)

		// 题库
		api.GET("/choices", c.question.ListChoices)
		api.GET("/fills", c.question.ListFills)
		api.GET("/judges", c.question.ListJudges)
		api.POST("/choices/by-paper", c.question.ChoicesByPaper)
		api.POST("/judgments/by-paper", c.question.JudgmentsByPaper)
		api.POST("/blanks/by-paper", c.question.BlanksByPaper)

		// 学生端
		student := api.Group("/student")
		{
			student.GET("/papers", c.student.Papers)
			student.GET("/paper/questions", c.student.PaperQuestions)
			student.POST("/mirror/papers", c.question.OwnerPapers)
		}

		// 判分
		api.POST("/submit", c.submission.Submit)

		// 教学设计
		api.POST("/sheji", c.design.Generate)
		api.GET("/sheji/latest", c.design.Latest)
	}

	router.POST("/publish/homework", c.homework.Publish)
}
