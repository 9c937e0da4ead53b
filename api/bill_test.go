package api

import (
	"bytes"
	"encoding/csv"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"billsmith/models"
	"billsmith/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newBillRouter(t *testing.T) (*gin.Engine, *BillHandler, string) {
	t.Helper()
	root := t.TempDir()
	h := NewBillHandler(testConfig(root), service.NewLocalStorage(root))

	r := gin.New()
	r.GET("/bills", h.List)
	r.POST("/bills/upload", h.Upload)
	r.POST("/bills/mock", h.Mock)
	r.GET("/bills/due", h.Due)
	r.GET("/bills/export/csv", h.ExportCSV)
	r.GET("/bills/export/excel", h.ExportExcel)
	r.GET("/bills/:id", h.Get)
	r.PATCH("/bills/:id", h.Update)
	r.DELETE("/bills/:id", h.Delete)
	r.GET("/bills/:id/file", h.File)
	return r, h, root
}

func TestBillHandler_ListFiltersAndTotal(t *testing.T) {
	db := setupTestDB(t)
	r, _, _ := newBillRouter(t)
	power := mustCategory(t, db, "Electricity")
	water := mustCategory(t, db, "Water")

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		insertBill(t, db, models.Bill{CategoryID: power.ID, Vendor: "Acme Power", NeedsReview: i == 0, CreatedAt: base.AddDate(0, 0, i)})
	}
	insertBill(t, db, models.Bill{CategoryID: water.ID, Vendor: "City Water", CreatedAt: base})

	w := perform(r, http.MethodGet, "/bills?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4", w.Header().Get("X-Total-Count"))
	var bills []models.Bill
	decode(t, w, &bills)
	require.Len(t, bills, 2)
	assert.True(t, base.AddDate(0, 0, 2).Equal(bills[0].CreatedAt))
	assert.Equal(t, "Electricity", bills[0].Category.Name)

	w = perform(r, http.MethodGet, "/bills?category_id="+uintStr(power.ID)+"&needs_review=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))

	w = perform(r, http.MethodGet, "/bills?search=city", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &bills)
	require.Len(t, bills, 1)
	assert.Equal(t, "City Water", bills[0].Vendor)

	w = perform(r, http.MethodGet, "/bills?skip=-1", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = perform(r, http.MethodGet, "/bills?needs_review=maybe", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBillHandler_GetAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	r, _, _ := newBillRouter(t)
	power := mustCategory(t, db, "Electricity")
	gas := mustCategory(t, db, "Gas")
	bill := insertBill(t, db, models.Bill{CategoryID: power.ID, Vendor: "Acme", InvoiceNumber: strPtr("INV-1"), NeedsReview: true})

	w := perform(r, http.MethodGet, "/bills/"+uintStr(bill.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	body := `{"category_id":` + uintStr(gas.ID) + `,"amount_due":"42.456","invoice_number":null,"due_date":"2025-07-01","needs_review":false}`
	w = perform(r, http.MethodPatch, "/bills/"+uintStr(bill.ID), body)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Bill
	decode(t, w, &got)
	assert.Equal(t, gas.ID, got.CategoryID)
	assert.Equal(t, "Gas", got.Category.Name)
	assert.True(t, decimal.RequireFromString("42.46").Equal(got.AmountDue))
	assert.Nil(t, got.InvoiceNumber)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2025-07-01", got.DueDate.String())
	assert.False(t, got.NeedsReview)
	assert.Equal(t, "Acme", got.Vendor)

	w = perform(r, http.MethodPatch, "/bills/"+uintStr(bill.ID), `{"category_id":999}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodPatch, "/bills/"+uintStr(bill.ID), `{"vendor":null}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = perform(r, http.MethodGet, "/bills/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp Response
	decode(t, w, &resp)
	assert.Equal(t, "Bill not found", resp.Message)
}

func TestBillHandler_FileAndDelete(t *testing.T) {
	db := setupTestDB(t)
	r, _, root := newBillRouter(t)
	cat := mustCategory(t, db, "Electricity")

	path := filepath.Join(root, "2025", "bill.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))
	bill := insertBill(t, db, models.Bill{CategoryID: cat.ID, Vendor: "Acme", InvoiceNumber: strPtr("INV-9"), FilePath: path})

	w := perform(r, http.MethodGet, "/bills/"+uintStr(bill.ID)+"/file", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename=Acme_INV-9.pdf`)
	assert.Equal(t, "%PDF-1.4 test", w.Body.String())

	w = perform(r, http.MethodDelete, "/bills/"+uintStr(bill.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var msg MessageResponse
	decode(t, w, &msg)
	assert.Equal(t, "Bill deleted successfully", msg.Message)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	w = perform(r, http.MethodDelete, "/bills/"+uintStr(bill.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBillHandler_FileMissingOnDisk(t *testing.T) {
	db := setupTestDB(t)
	r, _, root := newBillRouter(t)
	cat := mustCategory(t, db, "Water")
	bill := insertBill(t, db, models.Bill{CategoryID: cat.ID, FilePath: filepath.Join(root, "gone.pdf")})

	w := perform(r, http.MethodGet, "/bills/"+uintStr(bill.ID)+"/file", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp Response
	decode(t, w, &resp)
	assert.Equal(t, "File not found on disk", resp.Message)
}

func uploadRequest(t *testing.T, files map[string][]byte) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/bills/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestBillHandler_Upload(t *testing.T) {
	setupTestDB(t)
	r, _, root := newBillRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string][]byte{"a.pdf": []byte("pdf"), "b.PNG": []byte("png")}))
	require.Equal(t, http.StatusOK, w.Code)

	var result service.UploadResult
	decode(t, w, &result)
	assert.Len(t, result.Jobs, 2)
	assert.Equal(t, service.UploadStatusUploaded, result.Status)
	assert.Equal(t, "Uploaded 2 files", result.Message)

	entries, err := os.ReadDir(filepath.Join(root, "temp"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBillHandler_UploadRejected(t *testing.T) {
	setupTestDB(t)
	r, _, root := newBillRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string][]byte{"a.pdf": []byte("pdf"), "notes.txt": []byte("txt")}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp Response
	decode(t, w, &resp)
	assert.Contains(t, resp.Message, "File type txt not allowed")

	_, err := os.Stat(filepath.Join(root, "temp"))
	assert.True(t, os.IsNotExist(err))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, map[string][]byte{"big.pdf": bytes.Repeat([]byte("x"), 2<<20)}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = perform(r, http.MethodPost, "/bills/upload", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, "No files uploaded", resp.Message)
}

func TestBillHandler_Mock(t *testing.T) {
	db := setupTestDB(t)
	r, _, root := newBillRouter(t)

	w := perform(r, http.MethodPost, "/bills/mock", "")
	require.Equal(t, http.StatusOK, w.Code)
	var bill models.Bill
	decode(t, w, &bill)
	assert.Equal(t, "Test Utility Company", bill.Vendor)
	assert.Equal(t, "Electricity", bill.Category.Name)
	assert.True(t, decimal.RequireFromString("125.50").Equal(bill.AmountDue))
	assert.Equal(t, filepath.Join(root, "mock", "mock_bill.pdf"), bill.FilePath)

	w = perform(r, http.MethodPost, "/bills/mock?vendor=Acme&amount=9.999&category_name=Phone", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &bill)
	assert.Equal(t, "Phone", bill.Category.Name)
	assert.True(t, decimal.RequireFromString("10.00").Equal(bill.AmountDue))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	w = perform(r, http.MethodPost, "/bills/mock?amount=abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBillHandler_Due(t *testing.T) {
	db := setupTestDB(t)
	r, h, _ := newBillRouter(t)
	h.now = func() time.Time { return time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC) }
	cat := mustCategory(t, db, "Electricity")

	d := func(day int) *models.Date {
		v := models.NewDate(2025, time.June, day)
		return &v
	}
	insertBill(t, db, models.Bill{CategoryID: cat.ID, Vendor: "Later", DueDate: d(17)})
	insertBill(t, db, models.Bill{CategoryID: cat.ID, Vendor: "Today", DueDate: d(10)})
	insertBill(t, db, models.Bill{CategoryID: cat.ID, Vendor: "Past", DueDate: d(9)})
	insertBill(t, db, models.Bill{CategoryID: cat.ID, Vendor: "TooFar", DueDate: d(18)})

	w := perform(r, http.MethodGet, "/bills/due", "")
	require.Equal(t, http.StatusOK, w.Code)
	var bills []models.Bill
	decode(t, w, &bills)
	require.Len(t, bills, 2)
	assert.Equal(t, "Today", bills[0].Vendor)
	assert.Equal(t, "Later", bills[1].Vendor)

	w = perform(r, http.MethodGet, "/bills/due?days=0", "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &bills)
	require.Len(t, bills, 1)

	w = perform(r, http.MethodGet, "/bills/due?days=-3", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBillHandler_Export(t *testing.T) {
	db := setupTestDB(t)
	r, h, _ := newBillRouter(t)
	h.now = func() time.Time { return time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) }
	power := mustCategory(t, db, "Electricity")
	water := mustCategory(t, db, "Water")
	insertBill(t, db, models.Bill{CategoryID: power.ID, Vendor: "Acme", AmountDue: decimal.RequireFromString("10.10")})
	insertBill(t, db, models.Bill{CategoryID: power.ID, Vendor: "Acme", AmountDue: decimal.RequireFromString("20.20")})
	insertBill(t, db, models.Bill{CategoryID: water.ID, Vendor: "City", AmountDue: decimal.RequireFromString("5.00")})

	w := perform(r, http.MethodGet, "/bills/export/csv?category_id="+uintStr(power.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=bills_20250610.csv", w.Header().Get("Content-Disposition"))
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(w.Body.String(), "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "ID", records[0][0])

	w = perform(r, http.MethodGet, "/bills/export/excel", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=bills_20250610.xlsx", w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	total, err := f.GetCellValue(service.ExportSheetName, "I5")
	require.NoError(t, err)
	assert.Equal(t, "35.3", total)
}

func TestBillHandler_ListDatabaseError(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `bills`").
		WillReturnError(errors.New("deadlock"))

	r, _, _ := newBillRouter(t)
	w := perform(r, http.MethodGet, "/bills", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillHandler_DeleteDatabaseError(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `bills`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "vendor", "amount_due", "file_path"}).
			AddRow(7, 1, "Acme", "10.00", "/nowhere/bill.pdf"))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color_hex", "active"}).AddRow(1, "Gas", "#FF6B00", true))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `bills`").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	r, _, _ := newBillRouter(t)
	w := perform(r, http.MethodDelete, "/bills/7", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
