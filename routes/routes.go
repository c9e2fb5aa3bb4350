package routes

import (
	"github.com/gin-gonic/gin"

	"pharmacy-backend/controllers"
	"pharmacy-backend/middleware"
)

func InitializeRoutes(router *gin.Engine) {
	router.POST("/api/users/register", controllers.Register)
	router.POST("/api/users/login", controllers.Login)
	router.POST("/api/users/forgot-password", controllers.RequestPasswordReset)
	router.POST("/api/users/verify-code", controllers.VerifyCode)
	router.POST("/api/users/reset-password", controllers.ResetPassword)
	router.Static("/uploads", "./uploads")

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/users/profile", controllers.GetProfile)

		authed.GET("/medicines", controllers.GetAllMedicines)
		authed.GET("/medicines/lowstock", controllers.GetLowStockMedicines)
		authed.GET("/medicines/expiring", controllers.GetExpiringMedicines)
		authed.GET("/medicines/:id", controllers.GetMedicine)

		authed.GET("/prescriptions", controllers.GetAllPrescriptions)
		authed.GET("/prescriptions/pending", controllers.GetPendingPrescriptions)
		authed.GET("/prescriptions/number/:prescriptionNumber", controllers.GetPrescriptionByNumber)
		authed.GET("/prescriptions/:id", controllers.GetPrescription)
		authed.POST("/prescriptions", controllers.CreatePrescription)
		authed.PUT("/prescriptions/:id", controllers.UpdatePrescription)
		authed.PATCH("/prescriptions/:id/status", controllers.UpdatePrescriptionStatus)
		authed.DELETE("/prescriptions/:id", controllers.DeletePrescription)

		authed.GET("/sales", controllers.GetAllSales)
		authed.GET("/sales/report", controllers.GetSalesReport)
		authed.GET("/sales/:id", controllers.GetSale)
		authed.POST("/sales", controllers.CreateSale)
	}

	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware("admin"))
	{
		admin.GET("/users", controllers.GetAllUsers)
		admin.PUT("/users/:id", controllers.UpdateUser)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.POST("/medicines", controllers.CreateMedicine)
		admin.PUT("/medicines/:id", controllers.UpdateMedicine)
		admin.DELETE("/medicines/:id", controllers.DeleteMedicine)
		admin.POST("/medicines/:id/photo", controllers.UploadMedicinePhoto)

		admin.GET("/suppliers", controllers.GetAllSuppliers)
		admin.GET("/suppliers/:id", controllers.GetSupplier)
		admin.POST("/suppliers", controllers.CreateSupplier)
		admin.PUT("/suppliers/:id", controllers.UpdateSupplier)
		admin.DELETE("/suppliers/:id", controllers.DeleteSupplier)
	}
}
