package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nodashin6/timeslotassigner/utils"
	"github.com/nodashin6/timeslotassigner/web/controllers"
	"github.com/nodashin6/timeslotassigner/web/middleware"
)

func init() {
	utils.LoadEnv()
}

func main() {
	port := utils.ServicePort()

	r := gin.Default()

	globalLimiter := middleware.NewRateLimiter(5, 15) // 5 req/s, burst 15, per IP
	globalLimiter.StartCleanup(10*time.Minute, time.Hour)

	r.POST("/slot", globalLimiter.Middleware(), controllers.AddSlot)
	r.POST("/slot/shift", globalLimiter.Middleware(), controllers.AddSlotWithShift)
	r.POST("/slot/remove", globalLimiter.Middleware(), controllers.RemoveSlot)
	r.GET("/slots", globalLimiter.Middleware(), controllers.SlotsAt)
	r.GET("/slots/flat", globalLimiter.Middleware(), controllers.AllSlotsAt)
	r.POST("/resource", globalLimiter.Middleware(), controllers.AddResource)
	r.GET("/resources", globalLimiter.Middleware(), controllers.Resources)
	r.POST("/bulk", globalLimiter.Middleware(), controllers.BulkAssign)
	r.POST("/bulk/shift", globalLimiter.Middleware(), controllers.BulkAssignWithShift)

	log.Printf("Starting slot service at :%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalln(err)
	}
}
