// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"PeopleDesk-backend/internal/auth"
	"PeopleDesk-backend/internal/controller/application"
	"PeopleDesk-backend/internal/controller/attendance"
	"PeopleDesk-backend/internal/controller/category"
	"PeopleDesk-backend/internal/controller/employee"
	"PeopleDesk-backend/internal/controller/intake"
	"PeopleDesk-backend/internal/controller/leave"
	"PeopleDesk-backend/internal/controller/opening"
	"PeopleDesk-backend/internal/controller/payroll"
	"PeopleDesk-backend/internal/middleware"
	"PeopleDesk-backend/internal/model"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "PeopleDesk-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes will register each http endpoint routes to bound MyServer instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrigins := strings.Split(allowOriginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	intakeCtrl := intake.NewIntakeController(s.DB, s.Storage, s.CRM, s.Chat)
	applicationCtrl := application.NewApplicationController(s.DB, s.Storage)
	categoryCtrl := category.NewCategoryController(s.DB)
	openingCtrl := opening.NewOpeningController(s.DB)
	employeeCtrl := employee.NewEmployeeController(s.DB, s.Storage)
	payrollCtrl := payroll.NewPayrollController(s.DB)
	attendanceCtrl := attendance.NewAttendanceController(s.DB)
	leaveCtrl := leave.NewLeaveController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		// Public career portal endpoints
		v1.POST("apply",
			middleware.EnvRateLimitMiddleware(),
			middleware.SizeLimit(10<<20),
			intakeCtrl.SubmitHandler)
		v1.GET("categories", categoryCtrl.PublicListHandler)
		v1.GET("openings", openingCtrl.PublicListHandler)
		v1.GET("openings/:id", openingCtrl.GetHandler)

		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register",
				middleware.RequireAuth(s.DB),
				middleware.CheckRole(model.RoleAdmin),
				lAuth.LocalRegisterHandler)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))
			needAuth.GET("me", lAuth.MeHandler)

			// Staff self-service endpoints
			attendanceRoute := needAuth.Group("/attendance")
			{
				attendanceRoute.POST("clock-in", attendanceCtrl.ClockInHandler)
				attendanceRoute.POST("clock-out", attendanceCtrl.ClockOutHandler)
				attendanceRoute.GET("me", attendanceCtrl.MyAttendanceHandler)
			}

			leaveRoute := needAuth.Group("/leaves")
			{
				leaveRoute.POST("", leaveCtrl.CreateHandler)
				leaveRoute.GET("me", leaveCtrl.MyLeavesHandler)
			}

			// Payslips are reachable by staff for their own payrolls, the
			// handler enforces ownership itself.
			needAuth.GET("payrolls/:id/payslip", payrollCtrl.PayslipHandler)

			needAdmin := needAuth.Group("/admin")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))

				applicationRoute := needAdmin.Group("/applications")
				{
					applicationRoute.GET("", applicationCtrl.ListHandler)
					applicationRoute.GET(":id", applicationCtrl.GetHandler)
					applicationRoute.GET(":id/attachment/:kind", applicationCtrl.AttachmentHandler)
					applicationRoute.PATCH(":id/status", applicationCtrl.UpdateStatusHandler)
					applicationRoute.DELETE(":id", applicationCtrl.DeleteHandler)
				}

				categoryRoute := needAdmin.Group("/categories")
				{
					categoryRoute.GET("", categoryCtrl.AdminListHandler)
					categoryRoute.POST("", categoryCtrl.CreateHandler)
					categoryRoute.PATCH(":id", categoryCtrl.UpdateHandler)
					categoryRoute.DELETE(":id", categoryCtrl.DeleteHandler)
				}

				openingRoute := needAdmin.Group("/openings")
				{
					openingRoute.POST("", openingCtrl.CreateHandler)
					openingRoute.PATCH(":id", openingCtrl.UpdateHandler)
					openingRoute.DELETE(":id", openingCtrl.DeleteHandler)
				}

				employeeRoute := needAdmin.Group("/employees")
				{
					employeeRoute.GET("", employeeCtrl.ListHandler)
					employeeRoute.GET(":id", employeeCtrl.GetHandler)
					employeeRoute.POST("", employeeCtrl.CreateHandler)
					employeeRoute.PATCH(":id", employeeCtrl.UpdateHandler)
					employeeRoute.DELETE(":id", employeeCtrl.DeactivateHandler)
					employeeRoute.POST(":id/photo", middleware.SizeLimit(10<<20), employeeCtrl.UploadPhotoHandler)
				}

				payrollRoute := needAdmin.Group("/payrolls")
				{
					payrollRoute.GET("", payrollCtrl.ListHandler)
					payrollRoute.POST("", payrollCtrl.CreateHandler)
					payrollRoute.PATCH(":id", payrollCtrl.UpdateHandler)
					payrollRoute.POST(":id/pay", payrollCtrl.PayHandler)
				}

				needAdmin.GET("attendance", attendanceCtrl.AdminListHandler)
				needAdmin.GET("leaves", leaveCtrl.ListHandler)
				needAdmin.PATCH("leaves/:id/decision", leaveCtrl.DecisionHandler)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
