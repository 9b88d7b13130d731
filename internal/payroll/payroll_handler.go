package payroll

import (
	"net/http"

	"go-nomina/internal/shared/apperror"
	"go-nomina/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Calculate runs payroll for one employee and persists it as a DRAFT batch
// of one.
func (h *Handler) Calculate(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeID")
	h.logger.Debug("http calculate payroll",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http calculate payroll validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Calculate(c.Request.Context(), companyID, employeeID, req.Period, c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CalculateBatch(c *gin.Context) {
	companyID := c.GetString("company_id")
	h.logger.Debug("http batch calculate payroll", zap.String("company_id", companyID))

	var req BatchCalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http batch calculate validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CalculateBatch(c.Request.Context(), companyID, req, c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	filter := QueryFilter{
		Period:     c.Query("quincena"),
		Status:     c.Query("status"),
		EmployeeID: c.Query("employee_id"),
	}

	resp, err := h.service.GetAll(ctx, companyID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(ctx, companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	id := c.Param("id")
	h.logger.Debug("http mark payroll paid",
		zap.String("company_id", companyID),
		zap.String("batch_id", id),
	)

	resp, err := h.service.MarkPaid(ctx, companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Void(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	id := c.Param("id")
	h.logger.Debug("http void payroll",
		zap.String("company_id", companyID),
		zap.String("batch_id", id),
	)

	resp, err := h.service.Void(ctx, companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// RequestPayslip queues PDF generation for one entry; the consumer picks the
// event up asynchronously.
func (h *Handler) RequestPayslip(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	batchID := c.Param("id")
	entryID := c.Param("entryID")

	if err := h.service.RequestPayslip(ctx, companyID, batchID, entryID, c.GetString("user_id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"queued": true}, nil)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	batchID := c.Param("id")
	entryID := c.Param("entryID")

	path, err := h.service.PayslipPath(ctx, companyID, batchID, entryID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.FileAttachment(path, "comprobante.pdf")
}
