package pdf

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/response"
)

// RenameRequest 定义了重命名请求的结构。newName 不包含扩展名，
// 原始扩展名由服务端重新拼接。
type RenameRequest struct {
	NewName string `json:"newName" binding:"required"`
}

// Rename 处理重命名文档的请求 (PUT /api/pdfs/:uuid/rename)
// @Summary      重命名文档
// @Description  修改文档显示名，原始扩展名保持不变，存储文件名与外部标识不受影响
// @Tags         文档管理
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        uuid  path  string         true  "文档外部标识"
// @Param        body  body  RenameRequest  true  "新文件名（不含扩展名）"
// @Success      200  {object}  response.Response  "重命名成功"
// @Failure      400  {object}  response.Response  "新文件名不能为空"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      404  {object}  response.Response  "文档不存在"
// @Failure      500  {object}  response.Response  "重命名失败"
// @Router       /pdfs/{uuid}/rename [put]
func (h *PdfHandler) Rename(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "新文件名不能为空")
		return
	}

	pdf, err := h.pdfSvc.Rename(c.Request.Context(), claims.UserID, c.Param("uuid"), req.NewName)
	if err != nil {
		if errors.Is(err, constant.ErrValidation) {
			response.Fail(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, constant.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "文档不存在")
		} else {
			response.Fail(c, http.StatusInternalServerError, "重命名失败: "+err.Error())
		}
		return
	}

	response.Success(c, pdf, "重命名成功")
}

// Delete 处理删除文档的请求 (DELETE /api/pdfs/:uuid)
// @Summary      删除文档
// @Description  删除物理文件和元数据记录，并级联删除该文档的高亮
// @Tags         文档管理
// @Security     BearerAuth
// @Produce      json
// @Param        uuid  path  string  true  "文档外部标识"
// @Success      200  {object}  response.Response  "删除成功"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      404  {object}  response.Response  "文档不存在"
// @Failure      500  {object}  response.Response  "删除失败"
// @Router       /pdfs/{uuid} [delete]
func (h *PdfHandler) Delete(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.pdfSvc.Delete(c.Request.Context(), claims.UserID, c.Param("uuid")); err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "文档不存在")
		} else {
			response.Fail(c, http.StatusInternalServerError, "删除文档失败: "+err.Error())
		}
		return
	}

	response.Success(c, nil, "删除文档成功")
}
