package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// movementFilter lee los filtros del historial desde la query string.
// from/to aceptan RFC3339 o YYYY-MM-DD.
func movementFilter(c *fiber.Ctx) (dto.MovementFilter, error) {
	f := dto.MovementFilter{
		Year:       c.QueryInt("year"),
		Month:      c.QueryInt("month"),
		Search:     c.Query("q"),
		PartID:     c.Query("part_id"),
		EmployeeID: c.Query("employee_id"),
		Direction:  c.Query("direction"),
		FOC:        c.Query("foc"),
		Page:       page(c),
	}
	var err error
	if f.From, err = queryTime(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryTime(c, "to"); err != nil {
		return f, err
	}
	if f.MachineID, err = queryInt64(c, "machine_id"); err != nil {
		return f, err
	}
	return f, nil
}

// stockFilter lee los filtros de la vista de stock.
func stockFilter(c *fiber.Ctx) (dto.StockFilter, error) {
	f := dto.StockFilter{
		Search:          c.Query("q"),
		BelowSafetyOnly: c.QueryBool("below_safety"),
		Page:            page(c),
	}
	var err error
	if f.MachineTypeID, err = queryInt64(c, "machine_type_id"); err != nil {
		return f, err
	}
	for name, dst := range map[string]**int{"min_stock": &f.MinStock, "max_stock": &f.MaxStock} {
		v, err := queryInt64(c, name)
		if err != nil {
			return f, err
		}
		if v != nil {
			n := int(*v)
			*dst = &n
		}
	}
	return f, nil
}

func page(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
}

func queryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.Invalid(name, "debe ser un entero")
	}
	return &v, nil
}

func queryTime(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, domain.Invalid(name, "formato RFC3339 o YYYY-MM-DD")
	}
	return &t, nil
}

func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, domain.Invalid(name, "debe ser un entero")
	}
	return v, nil
}
