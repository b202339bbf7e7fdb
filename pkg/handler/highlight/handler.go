package highlight

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xyhcode/pdfmark-app/internal/pkg/auth"
	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
	"github.com/xyhcode/pdfmark-app/pkg/response"
	highlight_service "github.com/xyhcode/pdfmark-app/pkg/service/highlight"
)

// HighlightHandler 负责处理所有与高亮相关的HTTP请求
type HighlightHandler struct {
	highlightSvc highlight_service.HighlightService
}

// NewHandler 是 HighlightHandler 的构造函数
func NewHandler(highlightSvc highlight_service.HighlightService) *HighlightHandler {
	return &HighlightHandler{highlightSvc: highlightSvc}
}

func getClaims(c *gin.Context) (*auth.CustomClaims, error) {
	claimsValue, exists := c.Get(auth.ClaimsKey)
	if !exists {
		return nil, errors.New("无法获取用户认证信息")
	}
	claims, ok := claimsValue.(*auth.CustomClaims)
	if !ok {
		return nil, errors.New("用户认证信息格式不正确")
	}
	return claims, nil
}

// CreateHighlightRequest 定义了创建高亮请求的结构。
// position 由前端定义并原样持久化，服务端不做结构校验。
type CreateHighlightRequest struct {
	PdfUUID    string         `json:"pdfUuid" binding:"required"`
	PageNumber int            `json:"pageNumber" binding:"required"`
	Text       string         `json:"text" binding:"required"`
	Position   model.Position `json:"position" binding:"required"`
	Comment    string         `json:"comment"`
}

// UpdateHighlightRequest 定义了更新高亮请求的结构，两个字段均可选
type UpdateHighlightRequest struct {
	Position model.Position `json:"position"`
	Comment  *string        `json:"comment"`
}

// Create 处理创建高亮的请求 (POST /api/highlights)
// @Summary      创建高亮
// @Description  在指定文档的某一页上创建高亮/批注
// @Tags         高亮管理
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  CreateHighlightRequest  true  "高亮内容"
// @Success      201  {object}  response.Response  "创建成功"
// @Failure      400  {object}  response.Response  "请求参数无效"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      404  {object}  response.Response  "文档不存在"
// @Failure      500  {object}  response.Response  "创建失败"
// @Router       /highlights [post]
func (h *HighlightHandler) Create(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req CreateHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	hl, err := h.highlightSvc.Create(c.Request.Context(), claims.UserID, req.PdfUUID, highlight_service.CreateParams{
		PageNumber: req.PageNumber,
		Text:       req.Text,
		Position:   req.Position,
		Comment:    req.Comment,
	})
	if err != nil {
		if errors.Is(err, constant.ErrValidation) {
			response.Fail(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, constant.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "文档不存在")
		} else {
			response.Fail(c, http.StatusInternalServerError, "创建高亮失败: "+err.Error())
		}
		return
	}

	response.SuccessWithStatus(c, http.StatusCreated, hl, "创建高亮成功")
}

// ListByPdf 处理获取某文档全部高亮的请求 (GET /api/highlights/pdf/:uuid)
// @Summary      获取文档的高亮列表
// @Description  返回指定文档下当前用户的全部高亮，按创建时间倒序
// @Tags         高亮管理
// @Security     BearerAuth
// @Produce      json
// @Param        uuid  path  string  true  "文档外部标识"
// @Success      200  {object}  response.Response  "获取成功"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      404  {object}  response.Response  "文档不存在"
// @Failure      500  {object}  response.Response  "获取失败"
// @Router       /highlights/pdf/{uuid} [get]
func (h *HighlightHandler) ListByPdf(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	highlights, err := h.highlightSvc.ListByPdf(c.Request.Context(), claims.UserID, c.Param("uuid"))
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "文档不存在")
		} else {
			response.Fail(c, http.StatusInternalServerError, "获取高亮列表失败: "+err.Error())
		}
		return
	}

	response.Success(c, highlights, "获取高亮列表成功")
}

// Update 处理更新高亮的请求 (PUT /api/highlights/:id)
// @Summary      更新高亮
// @Description  修改高亮的位置或评论
// @Tags         高亮管理
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "高亮ID"
// @Param        body  body  UpdateHighlightRequest  true  "更新内容"
// @Success      200  {object}  response.Response  "更新成功"
// @Failure      400  {object}  response.Response  "请求参数无效"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      404  {object}  response.Response  "高亮不存在"
// @Failure      500  {object}  response.Response  "更新失败"
// @Router       /highlights/{id} [put]
func (h *HighlightHandler) Update(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的高亮ID")
		return
	}

	var req UpdateHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	hl, err := h.highlightSvc.Update(c.Request.Context(), claims.UserID, uint(id), highlight_service.UpdateParams{
		Position: req.Position,
		Comment:  req.Comment,
	})
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "高亮不存在")
		} else {
			response.Fail(c, http.StatusInternalServerError, "更新高亮失败: "+err.Error())
		}
		return
	}

	response.Success(c, hl, "更新高亮成功")
}

// Delete 处理删除高亮的请求 (DELETE /api/highlights/:id)
// @Summary      删除高亮
// @Description  删除一条高亮记录
// @Tags         高亮管理
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "高亮ID"
// @Success      200  {object}  response.Response  "删除成功"
// @Failure      401  {object}  response.Response  "未授权"
// @Failure      404  {object}  response.Response  "高亮不存在"
// @Failure      500  {object}  response.Response  "删除失败"
// @Router       /highlights/{id} [delete]
func (h *HighlightHandler) Delete(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "无效的高亮ID")
		return
	}

	if err := h.highlightSvc.Delete(c.Request.Context(), claims.UserID, uint(id)); err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "高亮不存在")
		} else {
			response.Fail(c, http.StatusInternalServerError, "删除高亮失败: "+err.Error())
		}
		return
	}

	response.Success(c, nil, "删除高亮成功")
}
