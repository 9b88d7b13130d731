package payroll_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-nomina/internal/payroll"
	payrollerrors "go-nomina/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePayrollService struct {
	CalculateFn      func(ctx context.Context, companyID, employeeID, period, createdBy string) (payroll.BatchResponse, error)
	CalculateBatchFn func(ctx context.Context, companyID string, req payroll.BatchCalculateRequest, createdBy string) (payroll.BatchResponse, error)
	GetAllFn         func(ctx context.Context, companyID string, filter payroll.QueryFilter) ([]payroll.BatchResponse, error)
	GetByIDFn        func(ctx context.Context, companyID, id string) (payroll.BatchResponse, error)
	MarkPaidFn       func(ctx context.Context, companyID, id string) (payroll.BatchResponse, error)
	VoidFn           func(ctx context.Context, companyID, id string) (payroll.BatchResponse, error)
	RequestPayslipFn func(ctx context.Context, companyID, batchID, entryID, requestedBy string) error
	PayslipPathFn    func(ctx context.Context, companyID, batchID, entryID string) (string, error)
}

func (f *fakePayrollService) Calculate(ctx context.Context, companyID, employeeID, period, createdBy string) (payroll.BatchResponse, error) {
	return f.CalculateFn(ctx, companyID, employeeID, period, createdBy)
}
func (f *fakePayrollService) CalculateBatch(ctx context.Context, companyID string, req payroll.BatchCalculateRequest, createdBy string) (payroll.BatchResponse, error) {
	return f.CalculateBatchFn(ctx, companyID, req, createdBy)
}
func (f *fakePayrollService) GetAll(ctx context.Context, companyID string, filter payroll.QueryFilter) ([]payroll.BatchResponse, error) {
	return f.GetAllFn(ctx, companyID, filter)
}
func (f *fakePayrollService) GetByID(ctx context.Context, companyID, id string) (payroll.BatchResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakePayrollService) MarkPaid(ctx context.Context, companyID, id string) (payroll.BatchResponse, error) {
	return f.MarkPaidFn(ctx, companyID, id)
}
func (f *fakePayrollService) Void(ctx context.Context, companyID, id string) (payroll.BatchResponse, error) {
	return f.VoidFn(ctx, companyID, id)
}
func (f *fakePayrollService) RequestPayslip(ctx context.Context, companyID, batchID, entryID, requestedBy string) error {
	return f.RequestPayslipFn(ctx, companyID, batchID, entryID, requestedBy)
}
func (f *fakePayrollService) GeneratePayslip(ctx context.Context, companyID, batchID, entryID string) (string, error) {
	return "", nil
}
func (f *fakePayrollService) PayslipPath(ctx context.Context, companyID, batchID, entryID string) (string, error) {
	return f.PayslipPathFn(ctx, companyID, batchID, entryID)
}

func withIdentity(companyID, userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestPayrollHandler_Calculate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success returns 201 with the draft batch", func(t *testing.T) {
		companyID := uuid.New().String()
		userID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakePayrollService{
			CalculateFn: func(ctx context.Context, cid, eid, period, createdBy string) (payroll.BatchResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "2025-03", period)
				assert.Equal(t, userID, createdBy)
				return payroll.BatchResponse{
					ID:            uuid.New().String(),
					BatchNumber:   "NOM-000042",
					Period:        period,
					Status:        payroll.StatusDraft,
					EmployeeCount: 1,
					Net:           55326.88,
				}, nil
			},
		}

		r := gin.New()
		h := payroll.NewHandler(svc)
		r.POST("/payrolls/calculate/:employeeID", withIdentity(companyID, userID), h.Calculate)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/calculate/"+employeeID, strings.NewReader(`{"quincena":"2025-03"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"NOM-000042"`)
		assert.Contains(t, w.Body.String(), `"DRAFT"`)
	})

	t.Run("missing period rejected with 400", func(t *testing.T) {
		r := gin.New()
		h := payroll.NewHandler(&fakePayrollService{
			CalculateFn: func(ctx context.Context, cid, eid, period, createdBy string) (payroll.BatchResponse, error) {
				t.Fatal("service should not be called")
				return payroll.BatchResponse{}, nil
			},
		})
		r.POST("/payrolls/calculate/:employeeID", withIdentity(uuid.New().String(), ""), h.Calculate)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/calculate/"+uuid.New().String(), strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown employee maps to 404", func(t *testing.T) {
		r := gin.New()
		h := payroll.NewHandler(&fakePayrollService{
			CalculateFn: func(ctx context.Context, cid, eid, period, createdBy string) (payroll.BatchResponse, error) {
				return payroll.BatchResponse{}, payrollerrors.ErrEmployeeNotFound
			},
		})
		r.POST("/payrolls/calculate/:employeeID", withIdentity(uuid.New().String(), ""), h.Calculate)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/calculate/"+uuid.New().String(), strings.NewReader(`{"quincena":"2025-03"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
	})
}

func TestPayrollHandler_CalculateBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("forwards employee selection", func(t *testing.T) {
		companyID := uuid.New().String()
		first := uuid.New().String()
		second := uuid.New().String()

		svc := &fakePayrollService{
			CalculateBatchFn: func(ctx context.Context, cid string, req payroll.BatchCalculateRequest, createdBy string) (payroll.BatchResponse, error) {
				assert.Equal(t, "2025-03", req.Period)
				assert.Equal(t, []string{first, second}, req.EmployeeIDs)
				return payroll.BatchResponse{Status: payroll.StatusDraft, EmployeeCount: 2}, nil
			},
		}

		r := gin.New()
		h := payroll.NewHandler(svc)
		r.POST("/payrolls/batch-calculate", withIdentity(companyID, ""), h.CalculateBatch)

		body := `{"quincena":"2025-03","employee_ids":["` + first + `","` + second + `"]}`
		req := httptest.NewRequest(http.MethodPost, "/payrolls/batch-calculate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_count":2`)
	})

	t.Run("malformed employee id rejected with 400", func(t *testing.T) {
		r := gin.New()
		h := payroll.NewHandler(&fakePayrollService{
			CalculateBatchFn: func(ctx context.Context, cid string, req payroll.BatchCalculateRequest, createdBy string) (payroll.BatchResponse, error) {
				t.Fatal("service should not be called")
				return payroll.BatchResponse{}, nil
			},
		})
		r.POST("/payrolls/batch-calculate", withIdentity(uuid.New().String(), ""), h.CalculateBatch)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/batch-calculate", strings.NewReader(`{"quincena":"2025-03","employee_ids":["not-a-uuid"]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPayrollHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("passes query filters through", func(t *testing.T) {
		companyID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakePayrollService{
			GetAllFn: func(ctx context.Context, cid string, filter payroll.QueryFilter) ([]payroll.BatchResponse, error) {
				assert.Equal(t, "2025-03", filter.Period)
				assert.Equal(t, payroll.StatusPaid, filter.Status)
				assert.Equal(t, employeeID, filter.EmployeeID)
				return []payroll.BatchResponse{
					{BatchNumber: "NOM-000001", Status: payroll.StatusPaid},
				}, nil
			},
		}

		r := gin.New()
		h := payroll.NewHandler(svc)
		r.GET("/payrolls", withIdentity(companyID, ""), h.GetAll)

		req := httptest.NewRequest(http.MethodGet, "/payrolls?quincena=2025-03&status=PAID&employee_id="+employeeID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"NOM-000001"`)
	})
}

func TestPayrollHandler_StatusTransitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("mark paid returns updated batch", func(t *testing.T) {
		batchID := uuid.New().String()

		svc := &fakePayrollService{
			MarkPaidFn: func(ctx context.Context, cid, id string) (payroll.BatchResponse, error) {
				assert.Equal(t, batchID, id)
				return payroll.BatchResponse{ID: id, Status: payroll.StatusPaid}, nil
			},
		}

		r := gin.New()
		h := payroll.NewHandler(svc)
		r.POST("/payrolls/:id/mark-paid", withIdentity(uuid.New().String(), ""), h.MarkPaid)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/"+batchID+"/mark-paid", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"PAID"`)
	})

	t.Run("void of a paid batch maps to 409", func(t *testing.T) {
		svc := &fakePayrollService{
			VoidFn: func(ctx context.Context, cid, id string) (payroll.BatchResponse, error) {
				return payroll.BatchResponse{}, payrollerrors.ErrInvalidStatusTransition
			},
		}

		r := gin.New()
		h := payroll.NewHandler(svc)
		r.POST("/payrolls/:id/void", withIdentity(uuid.New().String(), ""), h.Void)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/"+uuid.New().String()+"/void", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPayrollHandler_Payslips(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("request payslip returns 202 queued", func(t *testing.T) {
		batchID := uuid.New().String()
		entryID := uuid.New().String()

		svc := &fakePayrollService{
			RequestPayslipFn: func(ctx context.Context, cid, bid, eid, requestedBy string) error {
				assert.Equal(t, batchID, bid)
				assert.Equal(t, entryID, eid)
				return nil
			},
		}

		r := gin.New()
		h := payroll.NewHandler(svc)
		r.POST("/payrolls/:id/entries/:entryID/payslip", withIdentity(uuid.New().String(), ""), h.RequestPayslip)

		req := httptest.NewRequest(http.MethodPost, "/payrolls/"+batchID+"/entries/"+entryID+"/payslip", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"queued":true`)
	})

	t.Run("download before generation maps to 404", func(t *testing.T) {
		svc := &fakePayrollService{
			PayslipPathFn: func(ctx context.Context, cid, bid, eid string) (string, error) {
				return "", payrollerrors.ErrPayslipNotReady
			},
		}

		r := gin.New()
		h := payroll.NewHandler(svc)
		r.GET("/payrolls/:id/entries/:entryID/payslip/download", withIdentity(uuid.New().String(), ""), h.DownloadPayslip)

		req := httptest.NewRequest(http.MethodGet, "/payrolls/"+uuid.New().String()+"/entries/"+uuid.New().String()+"/payslip/download", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("download streams the generated file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "NOM-000001-1020304050.pdf")
		assert.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))

		svc := &fakePayrollService{
			PayslipPathFn: func(ctx context.Context, cid, bid, eid string) (string, error) {
				return path, nil
			},
		}

		r := gin.New()
		h := payroll.NewHandler(svc)
		r.GET("/payrolls/:id/entries/:entryID/payslip/download", withIdentity(uuid.New().String(), ""), h.DownloadPayslip)

		req := httptest.NewRequest(http.MethodGet, "/payrolls/"+uuid.New().String()+"/entries/"+uuid.New().String()+"/payslip/download", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "comprobante.pdf")
		assert.Equal(t, "%PDF-1.4 test", w.Body.String())
	})
}
