package movement

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"toolledger.GO/api"
	"toolledger.GO/core/apperr"
	movementRepo "toolledger.GO/model/repository/movement"
	"toolledger.GO/service/export"
	"toolledger.GO/service/query"
)

func init() {
	api.RegisterModule(RegisterMovementRoutes)
}

func RegisterMovementRoutes(apiGroup *echo.Group, db *gorm.DB) {
	movements, err := movementRepo.NewMovementRepository(db)
	if err != nil {
		panic(fmt.Sprintf("movement_api: repository init: %v", err))
	}
	g := apiGroup.Group("/movements")

	// GET /api/movements – filtered, sorted, paginated history
	g.GET("", func(c echo.Context) error {
		f, err := buildFilter(c)
		if err != nil {
			return err
		}
		f.Limit = query.ClampLimit(atoiDefault(c.QueryParam("limit"), 0))
		f.Offset = query.ClampOffset(atoiDefault(c.QueryParam("offset"), 0))

		items, total, err := movements.List(f)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{
			"items": items, "total": total, "limit": f.Limit, "offset": f.Offset,
		})
	})

	// GET /api/movements/export.csv and export.xlsx – same filters as listing
	g.GET("/export.csv", func(c echo.Context) error {
		f, err := buildFilter(c)
		if err != nil {
			return err
		}
		items, err := movements.ListAll(f)
		if err != nil {
			return err
		}
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		res.Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=%q`, export.Filename("movements", "csv")))
		res.WriteHeader(http.StatusOK)
		return export.MovementsCSV(res, items)
	})
	g.GET("/export.xlsx", func(c echo.Context) error {
		f, err := buildFilter(c)
		if err != nil {
			return err
		}
		items, err := movements.ListAll(f)
		if err != nil {
			return err
		}
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		res.Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=%q`, export.Filename("movements", "xlsx")))
		res.WriteHeader(http.StatusOK)
		return export.MovementsXLSX(res, items)
	})
}

// buildFilter validates and translates the request's filter params.
func buildFilter(c echo.Context) (movementRepo.Filter, error) {
	var f movementRepo.Filter

	order, err := query.ParseMovementSort(c.QueryParam("sort"))
	if err != nil {
		return f, err
	}
	f.Order = order

	action, err := query.ParseAction(c.QueryParam("action"))
	if err != nil {
		return f, err
	}
	f.Action = action
	f.Operator = c.QueryParam("operator")

	if raw := c.QueryParam("tool_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return f, apperr.BadRequest(apperr.CodeInvalidBody, "invalid tool_id")
		}
		u := uint(id)
		f.ToolID = &u
	}

	from, to, err := query.ParseTimeRange(c.QueryParam("from"), c.QueryParam("to"), c.QueryParam("tz"))
	if err != nil {
		return f, err
	}
	f.From = from
	f.To = to
	return f, nil
}

func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
