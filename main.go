package main

import (
	"log"
	"net/http"

	"bakery-service/config"
	"bakery-service/consumers"
	"bakery-service/controllers"
	"bakery-service/database"
	"bakery-service/middlewares"
	"bakery-service/rabbitmq"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 初始化数据库
	if err := database.InitDB(); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.CloseDB()

	// 加载配置
	cfg := config.LoadConfig()

	// 初始化RabbitMQ
	rmq, err := rabbitmq.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("RabbitMQ initialization failed: %v", err)
	}
	defer rmq.Close()

	// 设置队列和交换机
	if err := rmq.SetupQueues(); err != nil {
		log.Fatalf("Failed to setup RabbitMQ queues: %v", err)
	}

	// 启动通知消费者
	go consumers.StartNotificationConsumer(rmq.Channel, cfg)

	// 设置RabbitMQ实例到控制器
	controllers.SetRabbitMQ(rmq)

	// 创建Gin路由
	r := gin.Default()

	// 应用Prometheus中间件
	r.Use(middlewares.PrometheusMiddleware())

	// 暴露Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查端点
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 上传的图片
	r.Static("/uploads", cfg.UploadDir)

	// 认证端点
	r.POST("/api/auth/register", controllers.RegisterUser)
	r.POST("/api/auth/login", controllers.LoginUser)

	// 需要认证的路由组
	authGroup := r.Group("/api")
	authGroup.Use(middlewares.AuthMiddleware())
	{
		authGroup.GET("/cart", controllers.GetCart)
		authGroup.POST("/cart/add", controllers.AddCartItem)
		authGroup.POST("/cart/add-cake", controllers.AddCakeToCart)
		authGroup.DELETE("/cart/items/:index", controllers.RemoveCartItem)
		authGroup.POST("/cart/checkout", controllers.CheckoutCart)
		authGroup.GET("/notifications", controllers.ListNotifications)
		authGroup.POST("/feedback", controllers.CreateFeedback)
	}

	// 管理后台路由组
	adminGroup := r.Group("/admin")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("/inventory", controllers.ListInventory)
		adminGroup.POST("/inventory", controllers.CreateItem)
		adminGroup.PUT("/inventory/:id", controllers.UpdateItem)
		adminGroup.DELETE("/inventory/:id", controllers.DeleteItem)
		adminGroup.GET("/feedback", controllers.ListFeedback)
	}

	// 启动服务器
	port := ":8080"
	log.Printf("Bakery service starting on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
