package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/materiales-api/internal/application/approval"
	"github.com/jhoicas/materiales-api/internal/application/dto"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
)

// MaterialHandler maneja las peticiones HTTP del ciclo de vida de materiales (protegido).
type MaterialHandler struct {
	wf *approval.Workflow
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(wf *approval.Workflow) *MaterialHandler {
	return &MaterialHandler{wf: wf}
}

// Submit godoc
// @Summary      Someter solicitud de material
// @Description  Crea una solicitud (alta, extensión o baja) en pending_approval con los tres niveles vacíos.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitMaterialRequest  true  "Datos de la solicitud"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.wf.Submit(c.Context(), approval.SubmitInput{
		RequestType:         in.RequestType,
		MaterialTypeCode:    in.MaterialTypeCode,
		TargetMaterialID:    in.TargetMaterialID,
		Description:         in.Description,
		DepartmentID:        in.DepartmentID,
		SectionID:           in.SectionID,
		WarehouseID:         in.WarehouseID,
		WarehouseName:       in.WarehouseName,
		Attributes:          in.Attributes,
		InventoryDefaults:   in.Inventory.ToEntityInventory(),
		ProcurementDefaults: in.Procurement.ToEntityProcurement(),
		RequestedBy:         GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMaterialResponse(m))
}

// GetByID godoc
// @Summary      Detalle de material
// @Description  Maestro con sus registros de stock por bodega e inventario efectivo.
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	m, stocks, err := h.wf.Detail(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMaterialDetailResponse(m, stocks))
}

// List godoc
// @Summary      Listar materiales por estado
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"  default(pending_approval)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MaterialListResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", entity.StatusPendingApproval)
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	items, total, err := h.wf.List(c.Context(), status, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.MaterialListResponse{
		Items: make([]dto.MaterialResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, m := range items {
		out.Items = append(out.Items, dto.NewMaterialResponse(m))
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar un nivel
// @Description  Otorga el nivel indicado (estrictamente en orden). El nivel 3 materializa la solicitud en la misma transacción.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.ApproveRequest  true  "Nivel a otorgar"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/approve [post]
func (h *MaterialHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ApproveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.wf.Approve(c.Context(), id, in.Level, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMaterialResponse(res.Record))
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Description  Rechazo terminal con motivo obligatorio; ninguna aprobación posterior es posible.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.RejectRequest  true  "Motivo"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/reject [post]
func (h *MaterialHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RejectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.wf.Reject(c.Context(), id, in.Reason, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMaterialResponse(m))
}

// Stocks godoc
// @Summary      Stock por bodega
// @Description  Registros de stock del material en todas las bodegas donde está extendido.
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {array}   dto.WarehouseStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/stock [get]
func (h *MaterialHandler) Stocks(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	stocks, err := h.wf.Stocks(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.WarehouseStockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.NewWarehouseStockResponse(s))
	}
	return c.JSON(out)
}
