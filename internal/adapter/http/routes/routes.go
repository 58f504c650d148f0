package routes

import (
	_ "docdata_gateway/docs" // This will be auto-generated
	"docdata_gateway/internal/adapter/http/handlers"
	"docdata_gateway/internal/infrastructure/payments/docdata"
	"docdata_gateway/internal/usecase"
	"docdata_gateway/internal/usecase/interfaces"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	var gateway interfaces.IOrderGateway
	client, err := docdata.NewClient(docdata.Config{
		MerchantName:     os.Getenv("DOCDATA_MERCHANT_NAME"),
		MerchantPassword: os.Getenv("DOCDATA_MERCHANT_PASSWORD"),
		Test:             getenvBool("DOCDATA_TEST", true),
		PluginVersion:    getenvDefault("DOCDATA_PLUGIN_VERSION", "dev"),
		XSDVersion:       os.Getenv("DOCDATA_XSD_VERSION"),
	})
	if err != nil {
		log.Printf("Docdata gateway not configured: %v", err)
	} else {
		gateway = client
	}

	checkoutUseCase := usecase.NewCheckoutUseCase(gateway)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCheckoutRoutes(v1, checkoutHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}
