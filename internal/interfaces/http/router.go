package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/materiales-api/internal/application/approval"
	"github.com/jhoicas/materiales-api/internal/application/policy"
)

// Roles reconocidos por el RBAC de rutas. El nivel concreto que corresponde
// otorgar lo decide la máquina de estados, no el router.
const (
	RoleRequester  = "solicitante"
	RoleApproverL1 = "aprobador_n1"
	RoleApproverL2 = "aprobador_n2"
	RoleApproverL3 = "aprobador_n3"
	RolePlanner    = "planificador"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Workflow     *approval.Workflow
	Orchestrator *policy.Orchestrator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.Workflow)
	materials.Post("/", materialHandler.Submit)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Get("/:id/stock", materialHandler.Stocks)

	approvers := RequireRole(RoleApproverL1, RoleApproverL2, RoleApproverL3)
	materials.Post("/:id/approve", approvers, materialHandler.Approve)
	materials.Post("/:id/reject", approvers, materialHandler.Reject)

	policyHandler := NewPolicyHandler(deps.Orchestrator)
	materials.Post("/:id/stock/:warehouseId/policy/recalculate",
		RequireRole(RolePlanner), policyHandler.Recalculate)
}
