package router

import (
	catalogsvc "estate-backend/internal/application/catalog"
	"estate-backend/internal/application/ledger"
	locksvc "estate-backend/internal/application/lock"
	reportsvc "estate-backend/internal/application/reports"
	"estate-backend/internal/application/schedule"
	"estate-backend/internal/config"
	"estate-backend/internal/infrastructure/database"
	cataloghandler "estate-backend/internal/interfaces/handlers/catalog"
	contracthandler "estate-backend/internal/interfaces/handlers/contracts"
	healthhandler "estate-backend/internal/interfaces/handlers/health"
	lockhandler "estate-backend/internal/interfaces/handlers/lock"
	reporthandler "estate-backend/internal/interfaces/handlers/reports"
	treasuryhandler "estate-backend/internal/interfaces/handlers/treasury"
	unithandler "estate-backend/internal/interfaces/handlers/units"
	"estate-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// LedgerOptions maps the business switches in cfg onto the ledger.
func LedgerOptions(cfg *config.Config) ledger.Options {
	return ledger.Options{
		Schedule: schedule.Options{
			AnnualInstallments:     cfg.AnnualInstallments,
			MaintenanceInstallment: cfg.MaintenanceInstallment,
		},
		ReverseOnDelete: cfg.ReverseOnContractDelete,
	}
}

// CreateApp builds the Fiber app with all global middleware and route registration.
// rdb is optional.
func CreateApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		BodyLimit:             8 * 1024 * 1024,
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}))
	if rdb != nil {
		app.Use(middleware.HealthMarker(rdb))
	}

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &database.Pinger{DB: db},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)

	ls := ledger.NewService(db, LedgerOptions(cfg))
	rs := &reportsvc.Service{DB: db}
	cs := &catalogsvc.Service{DB: db}

	api := app.Group("/api")

	rh := &reporthandler.Handlers{Service: rs, Catalog: cs}
	api.Get("/alldata", rh.AllData)
	api.Get("/dashboard/kpis", rh.KPIs)
	api.Get("/backup.xlsx", rh.Backup)
	api.Get("/auditLog", rh.AuditLog)

	// Reference records
	ch := &cataloghandler.Handlers{Service: cs}
	api.Get("/customers", ch.ListCustomers)
	api.Post("/customers", ch.CreateCustomer)
	api.Put("/customers/:id", ch.UpdateCustomer)
	api.Delete("/customers/:id", ch.DeleteCustomer)
	api.Get("/partners", ch.ListPartners)
	api.Post("/partners", ch.CreatePartner)
	api.Put("/partners/:id", ch.UpdatePartner)
	api.Delete("/partners/:id", ch.DeletePartner)
	api.Get("/brokers", ch.ListBrokers)
	api.Post("/brokers", ch.CreateBroker)
	api.Put("/brokers/:id", ch.UpdateBroker)
	api.Delete("/brokers/:id", ch.DeleteBroker)
	api.Get("/partnerGroups", ch.ListPartnerGroups)
	api.Post("/partnerGroups", ch.CreatePartnerGroup)
	api.Put("/partnerGroups/:id", ch.UpdatePartnerGroup)
	api.Delete("/partnerGroups/:id", ch.DeletePartnerGroup)
	api.Get("/partnerDebts", ch.ListPartnerDebts)
	api.Post("/partnerDebts", ch.CreatePartnerDebt)
	api.Put("/partnerDebts/:id", ch.UpdatePartnerDebt)
	api.Delete("/partnerDebts/:id", ch.DeletePartnerDebt)

	// Units
	uh := &unithandler.Handlers{Ledger: ls, Reports: rs, Catalog: cs}
	api.Get("/units", uh.List)
	api.Post("/units", uh.Create)
	api.Delete("/units/:id", uh.Delete)
	api.Get("/units/:id/balance", uh.Balance)

	// Contracts and installments
	ctr := &contracthandler.Handlers{Ledger: ls, Catalog: cs}
	api.Get("/contracts", ctr.List)
	api.Post("/contracts", ctr.Create)
	api.Delete("/contracts/:id", ctr.Delete)
	api.Get("/installments", ctr.ListInstallments)
	api.Post("/installments/:id/pay", ctr.PayInstallment)

	// Treasury
	th := &treasuryhandler.Handlers{Ledger: ls, Reports: rs, Catalog: cs}
	api.Get("/safes", th.ListSafes)
	api.Get("/safes/verify", th.VerifySafes)
	api.Post("/safes", th.CreateSafe)
	api.Put("/safes/:id", th.RenameSafe)
	api.Delete("/safes/:id", th.DeleteSafe)
	api.Get("/vouchers", th.ListVouchers)
	api.Post("/vouchers", th.PostVoucher)
	api.Get("/transfers", th.ListTransfers)
	api.Post("/transfers", th.Transfer)
	api.Get("/brokerDues", th.ListBrokerDues)
	api.Post("/brokerDues/:id/pay", th.PayBrokerDue)
	api.Post("/partnerDebts/:id/settle", th.SettlePartnerDebt)

	// App lock
	lh := &lockhandler.Handlers{Service: &locksvc.Service{DB: db}}
	api.Put("/lock", lh.Set)
	api.Post("/unlock", lh.Unlock)

	return app
}
