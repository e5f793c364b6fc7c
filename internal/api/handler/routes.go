package handler

import (
	"net/http"

	"github.com/vfg2006/cafe-manager-api/internal/api/handler/router"
	"github.com/vfg2006/cafe-manager-api/internal/scheduler"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/analyzing"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/expensing"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/inventorying"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/payrolling"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/reconciling"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/selling"
	"github.com/vfg2006/cafe-manager-api/pkg/middleware"
)

func Healthcheck(appState *state.AppState) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(appState),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/operators",
			Method:  http.MethodGet,
			Handler: ListOperators(service),
		},
	}
}

func BusinessResults(service reconciling.Service, appState *state.AppState) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/results",
			Method:      http.MethodGet,
			Handler:     ListBusinessResults(appState),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/results/form",
			Method:      http.MethodGet,
			Handler:     PrefillResultForm(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/results",
			Method:      http.MethodPost,
			Handler:     SubmitBusinessResult(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Inventory(service inventorying.Service, appState *state.AppState) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/inventory/sessions/:date",
			Method:      http.MethodGet,
			Handler:     GetInventorySession(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/inventory/sessions",
			Method:      http.MethodPost,
			Handler:     SaveInventorySession(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/materials",
			Method:      http.MethodGet,
			Handler:     ListMaterials(appState),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/materials/batch",
			Method:      http.MethodPost,
			Handler:     SaveMaterialsBatch(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Expenses(service expensing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/expenses",
			Method:      http.MethodGet,
			Handler:     ListExpenses(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/expenses",
			Method:      http.MethodPost,
			Handler:     AddExpense(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/expenses/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteExpense(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Staff(service payrolling.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/staff",
			Method:      http.MethodGet,
			Handler:     ListStaff(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/staff",
			Method:      http.MethodPost,
			Handler:     SaveStaff(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/staff/batch",
			Method:      http.MethodPost,
			Handler:     SaveStaffBatch(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/staff/attendance",
			Method:      http.MethodPost,
			Handler:     RecordAttendance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Sales(service selling.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales/analysis",
			Method:      http.MethodGet,
			Handler:     GetMenuAnalysis(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sales/batch",
			Method:      http.MethodPost,
			Handler:     SaveSalesBatch(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Analysis(service analyzing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analysis/image",
			Method:      http.MethodPost,
			Handler:     AnalyzeImage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/analysis/apply",
			Method:      http.MethodPost,
			Handler:     ApplyExtracted(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(auditService *scheduler.LedgerAuditService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(auditService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(auditService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
