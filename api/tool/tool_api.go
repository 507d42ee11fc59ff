package tool

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"toolledger.GO/api"
	"toolledger.GO/config"
	"toolledger.GO/core/apperr"
	"toolledger.GO/core/auth"
	toolEntity "toolledger.GO/model/entity/tool"
	movementRepo "toolledger.GO/model/repository/movement"
	toolRepo "toolledger.GO/model/repository/tool"
	"toolledger.GO/service/export"
	"toolledger.GO/service/inventory"
	"toolledger.GO/service/query"
	"toolledger.GO/service/search"
)

func init() {
	api.RegisterModule(RegisterToolRoutes)
}

type toolBody struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Quantity int64  `json:"quantity"`
}

type movementBody struct {
	Action string `json:"action"`
	Delta  int64  `json:"delta"`
	Note   string `json:"note"`
}

type importBody struct {
	Items     []inventory.ImportRow `json:"items"`
	BatchSize int                   `json:"batch_size"`
}

func RegisterToolRoutes(apiGroup *echo.Group, db *gorm.DB) {
	tools, err := toolRepo.NewToolRepository(db)
	if err != nil {
		panic(fmt.Sprintf("tool_api: repository init: %v", err))
	}
	movements, err := movementRepo.NewMovementRepository(db)
	if err != nil {
		panic(fmt.Sprintf("tool_api: repository init: %v", err))
	}
	inv := inventory.NewService(db)
	g := apiGroup.Group("/tools")

	// GET /api/tools – filtered, sorted, paginated listing
	g.GET("", func(c echo.Context) error {
		order, err := query.ParseToolSort(c.QueryParam("sort"))
		if err != nil {
			return err
		}
		limit := query.ClampLimit(atoiDefault(c.QueryParam("limit"), 0))
		offset := query.ClampOffset(atoiDefault(c.QueryParam("offset"), 0))
		q := c.QueryParam("q")

		// relevance search via Elasticsearch when configured and no
		// explicit sort requested; SQL LIKE otherwise
		if q != "" && c.QueryParam("sort") == "" && search.GetService().Enabled() {
			ids, total, err := search.GetService().SearchIDs(q, limit, offset)
			if err == nil {
				items, err := tools.FindByIDs(ids)
				if err != nil {
					return err
				}
				return c.JSON(http.StatusOK, echo.Map{
					"items": items, "total": total, "limit": limit, "offset": offset, "q": q,
				})
			}
			// fall through to SQL on search failure
		}

		items, total, err := tools.List(toolRepo.Filter{Query: q, Order: order, Limit: limit, Offset: offset})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{
			"items": items, "total": total, "limit": limit, "offset": offset, "q": q,
		})
	})

	// POST /api/tools – create; non-zero quantity also records the initial
	// stock movement in the same transaction
	g.POST("", func(c echo.Context) error {
		var body toolBody
		if err := c.Bind(&body); err != nil {
			return apperr.BadRequest(apperr.CodeInvalidBody, "invalid request body")
		}
		operator, _ := auth.CurrentUser(c)

		t, _, err := inv.CreateTool(body.Name, body.Location, body.Quantity, operator.Username)
		if err != nil {
			return err
		}
		search.GetService().IndexTool(t)
		return c.JSON(http.StatusCreated, t)
	})

	// GET /api/tools/export.csv and export.xlsx
	g.GET("/export.csv", func(c echo.Context) error {
		items, err := tools.ListAll(c.QueryParam("q"), "id ASC")
		if err != nil {
			return err
		}
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		res.Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=%q`, export.Filename("tools", "csv")))
		res.WriteHeader(http.StatusOK)
		return export.ToolsCSV(res, items)
	})
	g.GET("/export.xlsx", func(c echo.Context) error {
		items, err := tools.ListAll(c.QueryParam("q"), "id ASC")
		if err != nil {
			return err
		}
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		res.Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=%q`, export.Filename("tools", "xlsx")))
		res.WriteHeader(http.StatusOK)
		return export.ToolsXLSX(res, items)
	})

	// POST /api/tools/import – bulk create with per-row warnings
	g.POST("/import", func(c echo.Context) error {
		var body importBody
		if err := c.Bind(&body); err != nil {
			return apperr.BadRequest(apperr.CodeInvalidBody, "invalid request body")
		}
		if len(body.Items) == 0 {
			return apperr.BadRequest(apperr.CodeInvalidBody, "items array is required and must not be empty")
		}
		operator, _ := auth.CurrentUser(c)

		start := time.Now()
		report, err := inv.ImportTools(body.Items, inventory.ImportOptions{
			BatchSize: body.BatchSize,
			Operator:  operator.Username,
		})
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return err
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"imported":            report.Created,
			"skipped":             report.Skipped,
			"warnings":            report.Warnings,
			"request_duration_ms": duration,
		})
	})

	// GET /api/tools/:id – cached in Redis when configured
	g.GET("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		cacheKey := fmt.Sprintf("tool:%d", id)
		if config.RedisClient != nil {
			if raw, err := config.RedisClient.Get(config.RedisCtx(), cacheKey).Result(); err == nil {
				var cached toolEntity.Tool
				if json.Unmarshal([]byte(raw), &cached) == nil {
					return c.JSON(http.StatusOK, &cached)
				}
			}
		}

		t, err := tools.FindByID(id)
		if err != nil {
			return apperr.NotFound("tool")
		}
		if config.RedisClient != nil {
			if raw, err := json.Marshal(t); err == nil {
				config.RedisClient.Set(config.RedisCtx(), cacheKey, raw, time.Minute)
			}
		}
		return c.JSON(http.StatusOK, t)
	})

	// PUT /api/tools/:id – metadata only; quantity moves via movements
	g.PUT("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body toolBody
		if err := c.Bind(&body); err != nil {
			return apperr.BadRequest(apperr.CodeInvalidBody, "invalid request body")
		}

		t, err := inv.UpdateTool(id, body.Name, body.Location)
		if err != nil {
			return err
		}
		invalidate(id)
		search.GetService().IndexTool(t)
		return c.JSON(http.StatusOK, t)
	})

	// DELETE /api/tools/:id – movement history is kept
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := inv.DeleteTool(id); err != nil {
			return err
		}
		invalidate(id)
		search.GetService().DeleteTool(id)
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	// POST /api/tools/:id/movements – apply one ledger action
	g.POST("/:id/movements", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var body movementBody
		if err := c.Bind(&body); err != nil {
			return apperr.BadRequest(apperr.CodeInvalidBody, "invalid request body")
		}
		operator, _ := auth.CurrentUser(c)

		t, mv, err := inv.ApplyMovement(id, toolEntity.Action(body.Action), body.Delta, body.Note, operator.Username)
		if err != nil {
			return err
		}
		invalidate(id)
		search.GetService().IndexTool(t)
		return c.JSON(http.StatusOK, echo.Map{"tool": t, "movement": mv})
	})

	// GET /api/tools/:id/stock – raw-SQL fast path, aggregates in parallel
	g.GET("/:id/stock", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var (
			qty   int64
			count int64
		)
		var eg errgroup.Group
		eg.Go(func() error {
			q, ok := tools.QuantityByID(id)
			if !ok {
				return apperr.NotFound("tool")
			}
			qty = q
			return nil
		})
		eg.Go(func() error {
			n, err := movements.CountByTool(id)
			if err != nil {
				return err
			}
			count = n
			return nil
		})
		if err := eg.Wait(); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"id": id, "quantity": qty, "movements": count})
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.BadRequest(apperr.CodeInvalidBody, "invalid tool id")
	}
	return uint(id), nil
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

// invalidate drops the cached tool detail after any mutation.
func invalidate(id uint) {
	if config.RedisClient != nil {
		config.RedisClient.Del(config.RedisCtx(), fmt.Sprintf("tool:%d", id))
	}
}
