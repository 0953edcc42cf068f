package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/materiales-api/internal/application/dto"
	"github.com/jhoicas/materiales-api/internal/application/policy"
)

// PolicyHandler maneja el recálculo de políticas de reposición (protegido).
type PolicyHandler struct {
	orch *policy.Orchestrator
}

// NewPolicyHandler construye el handler.
func NewPolicyHandler(orch *policy.Orchestrator) *PolicyHandler {
	return &PolicyHandler{orch: orch}
}

// Recalculate godoc
// @Summary      Recalcular política de reposición
// @Description  Clasificación de criticidad + estadísticas de demanda + parámetros de reposición para un material en una bodega. Con apply=false es una simulación de solo lectura.
// @Tags         policy
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id           path  string  true  "ID del material"
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Param        body         body  dto.RecalculateRequest  true  "Factores y overrides"
// @Success      200   {object}  dto.RecalculateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/stock/{warehouseId}/policy/recalculate [post]
func (h *PolicyHandler) Recalculate(c *fiber.Ctx) error {
	materialID := c.Params("id")
	warehouseID := c.Params("warehouseId")
	if materialID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id y warehouseId son requeridos"})
	}
	var in dto.RecalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.orch.Recalculate(c.Context(), materialID, warehouseID, GetUserID(c), in.ToInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewRecalculateResponse(materialID, warehouseID, out))
}
