package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/app"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/config"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/constants"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/controllers"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/middleware"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/repositories"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/routes"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/services"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

const appName = "lettings-service"

func main() {
	utils.InitLogger(appName)
	cfg := config.LoadConfig(appName)

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize lettings-service:", err)
	}
	defer application.Close()

	tenantRepo := repositories.NewTenantRepository(application.DB)
	propRepo := repositories.NewPropertyRepository(application.DB)
	pmRepo := repositories.NewPropertyManagerRepository(application.DB)

	engine := services.NewQualificationEngine()
	statusService := services.NewTenantStatusService(tenantRepo, engine)
	tenancyService := services.NewTenancyService(tenantRepo, propRepo, engine, statusService)
	tenantService := services.NewTenantService(tenantRepo)
	propertyService := services.NewPropertyService(propRepo)
	reconciler := services.NewReconciliationService(cfg, tenantRepo, propRepo, pmRepo)
	expiryService := services.NewLeaseExpiryService(tenantRepo, propRepo)

	tenancyController := controllers.NewTenancyController(tenancyService)
	tenantsController := controllers.NewTenantsController(tenantService, statusService)
	propertiesController := controllers.NewPropertiesController(propertyService)
	healthController := controllers.NewHealthController(application)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.TenanciesAssign, tenancyController.AssignHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.TenanciesUnassign, tenancyController.UnassignHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.TenantsBase, tenantsController.CreateTenantHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.TenantsBase, tenantsController.ListTenantsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantsFacts, tenantsController.UpdateFactsHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.TenantsQualificationEvaluate, tenantsController.EvaluateQualificationHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.TenantsStatusRecompute, tenantsController.RecomputeStatusHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.TenantsStatusOverride, tenantsController.SetStatusOverrideHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.TenantsStatusOverride, tenantsController.ClearStatusOverrideHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.TenantsByID, tenantsController.GetTenantHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantsByID, tenantsController.ArchiveTenantHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.PropertiesBase, propertiesController.CreatePropertyHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertiesBase, propertiesController.ListPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertiesByID, propertiesController.GetPropertyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertiesByID, propertiesController.ArchivePropertyHandler).Methods(http.MethodDelete)

	c := cron.New()
	_, reconcileErr := c.AddFunc(constants.ReconcileCronSpec, func() {
		if _, e := reconciler.RunReconciliation(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled reconciliation sweep failed")
		}
	})
	if reconcileErr != nil {
		utils.Logger.WithError(reconcileErr).Fatal("Failed to schedule reconciliation cron")
	}

	_, expiryErr := c.AddFunc(constants.LeaseExpiryCronSpec, func() {
		if e := expiryService.RunExpiryCheck(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled lease expiry check failed")
		}
	})
	if expiryErr != nil {
		utils.Logger.WithError(expiryErr).Fatal("Failed to schedule lease expiry cron")
	}
	c.Start()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("lettings-service failed to start:", err)
	}
}
