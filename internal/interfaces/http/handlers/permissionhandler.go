package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/application/permission/dto"
	"tourbook/internal/application/permission/usecases"
	"tourbook/internal/shared/authorization"
	"tourbook/internal/shared/errors"
	"tourbook/internal/shared/logger"
	"tourbook/internal/shared/utils"
)

type PermissionHandler struct {
	getMatrixUC  getPermissionMatrixUseCase
	updateUC     updateRolePermissionsUseCase
	copyUC       copyRolePermissionsUseCase
	toggleUC     toggleRolePermissionUseCase
	createRoleUC createRoleUseCase
	logger       logger.Interface
}

func NewPermissionHandler(
	getMatrixUC getPermissionMatrixUseCase,
	updateUC updateRolePermissionsUseCase,
	copyUC copyRolePermissionsUseCase,
	toggleUC toggleRolePermissionUseCase,
	createRoleUC createRoleUseCase,
	logger logger.Interface,
) *PermissionHandler {
	return &PermissionHandler{
		getMatrixUC:  getMatrixUC,
		updateUC:     updateUC,
		copyUC:       copyUC,
		toggleUC:     toggleUC,
		createRoleUC: createRoleUC,
		logger:       logger,
	}
}

// GetMatrix returns the role by permission grid.
// @Summary Get permission matrix
// @Description Active roles by level, active permissions grouped by module, and the grant grid
// @Tags Permissions
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.MatrixResponse}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin/permissions/matrix [get]
func (h *PermissionHandler) GetMatrix(c *gin.Context) {
	result, err := h.getMatrixUC.Execute(c.Request.Context(), usecases.GetPermissionMatrixQuery{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateMatrix reconciles the submitted grant sets. The body is reported as
// is, so per-role failures still answer 200 with success=false.
// @Summary Update permission matrix
// @Description Replace the grant set of every role present in the body. Omitted roles are left unchanged.
// @Tags Permissions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.UpdatePermissionsRequest true "Desired permission ids per role id"
// @Success 200 {object} dto.UpdatePermissionsResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /admin/permissions/matrix [put]
func (h *PermissionHandler) UpdateMatrix(c *gin.Context) {
	caller, ok := h.manager(c)
	if !ok {
		return
	}

	var req dto.UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update permissions", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	desired := make(map[uint][]uint, len(req.Permissions))
	for key, ids := range req.Permissions {
		roleID, err := dto.ParseRoleKey(key)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
			return
		}
		desired[roleID] = append(desired[roleID], ids...)
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateRolePermissionsCommand{
		Caller:      caller,
		Permissions: desired,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CopyPermissions overwrites one role's grants with another's.
// @Summary Copy role permissions
// @Tags Permissions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CopyPermissionsRequest true "Source and destination roles"
// @Success 200 {object} utils.APIResponse{data=dto.CopyPermissionsResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /admin/permissions/copy [post]
func (h *PermissionHandler) CopyPermissions(c *gin.Context) {
	caller, ok := h.manager(c)
	if !ok {
		return
	}

	var req dto.CopyPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for copy permissions", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.copyUC.Execute(c.Request.Context(), usecases.CopyRolePermissionsCommand{
		Caller:     caller,
		FromRoleID: req.FromRoleID,
		ToRoleID:   req.ToRoleID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "permissions copied successfully", result)
}

// TogglePermission grants or revokes a single permission.
// @Summary Toggle role permission
// @Tags Roles
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Role ID"
// @Param permissionId path int true "Permission ID"
// @Param request body dto.TogglePermissionRequest true "Desired grant state"
// @Success 200 {object} utils.APIResponse{data=dto.TogglePermissionResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /admin/roles/{id}/permissions/{permissionId} [patch]
func (h *PermissionHandler) TogglePermission(c *gin.Context) {
	caller, ok := h.manager(c)
	if !ok {
		return
	}

	roleID, err := utils.ParseUintParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	permissionID, err := utils.ParseUintParam(c, "permissionId", "permission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.TogglePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.toggleUC.Execute(c.Request.Context(), usecases.ToggleRolePermissionCommand{
		Caller:       caller,
		RoleID:       roleID,
		PermissionID: permissionID,
		Granted:      *req.Granted,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "permission revoked"
	if result.Granted {
		message = "permission granted"
	}
	if !result.Changed {
		message = "no changes detected"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// CreateRole adds a custom role.
// @Summary Create role
// @Tags Roles
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateRoleRequest true "Role attributes"
// @Success 201 {object} utils.APIResponse{data=dto.RoleDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /admin/roles [post]
func (h *PermissionHandler) CreateRole(c *gin.Context) {
	caller, ok := h.manager(c)
	if !ok {
		return
	}

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createRoleUC.Execute(c.Request.Context(), usecases.CreateRoleCommand{
		Caller:      caller,
		Name:        req.Name,
		Level:       req.Level,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "role created successfully")
}

func (h *PermissionHandler) caller(c *gin.Context) (authorization.Caller, bool) {
	caller, ok := authorization.GetCaller(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return authorization.Caller{}, false
	}
	return caller, true
}

// manager resolves the caller and rejects tiers that cannot manage
// permissions before the request body is read.
func (h *PermissionHandler) manager(c *gin.Context) (authorization.Caller, bool) {
	caller, ok := h.caller(c)
	if !ok {
		return authorization.Caller{}, false
	}
	if !caller.Tier().CanManagePermissions() {
		h.logger.Warnw("permission write rejected", "user_id", caller.UserID, "role", caller.RoleName, "path", c.Request.URL.Path)
		h.respondError(c, errors.NewForbiddenError("only Super Admin or Admin can manage permissions"))
		return authorization.Caller{}, false
	}
	return caller, true
}

// respondError answers gate rejections with the bare {success, message}
// body the admin UI expects; everything else goes through the standard mapping.
func (h *PermissionHandler) respondError(c *gin.Context, err error) {
	if errors.IsForbiddenError(err) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": errors.GetAppError(err).Message,
		})
		return
	}
	if errors.GetAppError(err) == nil {
		h.logger.Errorw("permission operation failed", "path", c.Request.URL.Path, "error", err)
	}
	utils.ErrorResponseWithError(c, err)
}
