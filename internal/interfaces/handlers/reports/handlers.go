package reports

import (
	"fmt"
	"time"

	catalogsvc "estate-backend/internal/application/catalog"
	reportsvc "estate-backend/internal/application/reports"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *reportsvc.Service
	Catalog *catalogsvc.Service
}

// AllData GET /api/alldata
func (h *Handlers) AllData(c *fiber.Ctx) error {
	snap, err := h.Service.Snapshot(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, snap)
}

// KPIs GET /api/dashboard/kpis
func (h *Handlers) KPIs(c *fiber.Ctx) error {
	k, err := h.Service.KPIs(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, k)
}

// AuditLog GET /api/auditLog, newest first.
func (h *Handlers) AuditLog(c *fiber.Ctx) error {
	rows, err := h.Catalog.ListAuditLog(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.OK(c, rows)
}

// Backup GET /api/backup.xlsx streams the ledger tables as a workbook.
func (h *Handlers) Backup(c *fiber.Ctx) error {
	wb, err := h.Service.Workbook(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	defer wb.Close()
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=ledger_%s.xlsx", time.Now().Format("20060102_150405")))
	return wb.Write(c.Response().BodyWriter())
}
